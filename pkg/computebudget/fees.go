package computebudget

import (
	"math"

	"github.com/ryanavella/wide"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
	"k8s.io/klog/v2"
)

const (
	LamportsPerSignature    = 5000
	microLamportsPerLamport = 1000000
)

// Fee is the cost of a transaction in lamports.
type Fee struct {
	Signatures uint64
	Base       uint64
	Priority   uint64
}

func (f Fee) Total() uint64 {
	if f.Base > math.MaxUint64-f.Priority {
		return math.MaxUint64
	}
	return f.Base + f.Priority
}

// PriorityFee is the compute unit price times the compute unit limit,
// rounded up to whole lamports.
func PriorityFee(limits *Limits) uint64 {
	computeUnitPrice := wide.Uint128FromUint64(limits.ComputeUnitPrice)
	computeUnitLimit := wide.Uint128FromUint64(uint64(limits.ComputeUnitLimit))

	microLamportFee := computeUnitPrice.Mul(computeUnitLimit)
	fee := microLamportFee.Add(wide.Uint128FromUint64(microLamportsPerLamport - 1)).Div(wide.Uint128FromUint64(microLamportsPerLamport))

	if !fee.IsUint64() {
		return math.MaxUint64
	}
	return fee.Uint64()
}

// EstimateFee computes the fee of a message with the given number of
// required signatures. Signatures verified by the precompiles are charged as
// well; their count is the first byte of the precompile instruction data.
func EstimateFee(numRequiredSignatures uint8, instructions []message.Instruction) (Fee, error) {
	limits, err := FromInstructions(instructions)
	if err != nil {
		return Fee{}, err
	}

	numSignatures := uint64(numRequiredSignatures)
	for _, instr := range instructions {
		if instr.ProgramID != solana.Secp256kPrecompileAddr && instr.ProgramID != solana.Ed25519PrecompileAddr {
			continue
		}
		if len(instr.Data) > 0 {
			numSignatures += uint64(instr.Data[0])
		}
	}

	fee := Fee{
		Signatures: numSignatures,
		Base:       numSignatures * LamportsPerSignature,
		Priority:   PriorityFee(limits),
	}
	klog.V(3).Infof("estimated fee: %d signatures, base %d, priority %d", fee.Signatures, fee.Base, fee.Priority)
	return fee, nil
}
