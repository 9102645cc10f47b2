package solana

const SystemProgramAddrStr = "11111111111111111111111111111111"

var SystemProgramAddr = MustAddress(SystemProgramAddrStr)

const ComputeBudgetProgramAddrStr = "ComputeBudget111111111111111111111111111111"

var ComputeBudgetProgramAddr = MustAddress(ComputeBudgetProgramAddrStr)

const AddressLookupTableProgramAddrStr = "AddressLookupTab1e1111111111111111111111111"

var AddressLookupTableProgramAddr = MustAddress(AddressLookupTableProgramAddrStr)

const BpfLoaderUpgradeableAddrStr = "BPFLoaderUpgradeab1e11111111111111111111111"

var BpfLoaderUpgradeableAddr = MustAddress(BpfLoaderUpgradeableAddrStr)

const TokenProgramAddrStr = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

var TokenProgramAddr = MustAddress(TokenProgramAddrStr)

const Token2022ProgramAddrStr = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"

var Token2022ProgramAddr = MustAddress(Token2022ProgramAddrStr)

const AssociatedTokenProgramAddrStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"

var AssociatedTokenProgramAddr = MustAddress(AssociatedTokenProgramAddrStr)

const TokenMetadataProgramAddrStr = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

var TokenMetadataProgramAddr = MustAddress(TokenMetadataProgramAddrStr)

const MemoProgramAddrStr = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"

var MemoProgramAddr = MustAddress(MemoProgramAddrStr)

const Ed25519PrecompileAddrStr = "Ed25519SigVerify111111111111111111111111111"

var Ed25519PrecompileAddr = MustAddress(Ed25519PrecompileAddrStr)

const Secp256kPrecompileAddrStr = "KeccakSecp256k11111111111111111111111111111"

var Secp256kPrecompileAddr = MustAddress(Secp256kPrecompileAddrStr)
