package solana

// FindAssociatedTokenAddress derives the token account of owner for mint
// under the given token program (TokenProgramAddr or Token2022ProgramAddr).
func FindAssociatedTokenAddress(owner, mint, tokenProgram Address) (ProgramDerivedAddress, error) {
	return FindProgramAddress([][]byte{owner[:], tokenProgram[:], mint[:]}, AssociatedTokenProgramAddr)
}

// FindTokenMetadataAddress derives the metadata account of a mint.
func FindTokenMetadataAddress(mint Address) (ProgramDerivedAddress, error) {
	return FindProgramAddress(
		[][]byte{[]byte("metadata"), TokenMetadataProgramAddr[:], mint[:]},
		TokenMetadataProgramAddr,
	)
}
