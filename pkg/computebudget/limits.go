package computebudget

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
)

var (
	ErrInvalidInstructionData = errors.New("InvalidInstructionData")
	ErrDuplicateInstruction   = errors.New("DuplicateInstruction")
)

// Limits is the compute budget a transaction requests, with defaults applied
// for everything it leaves unset.
type Limits struct {
	HeapBytes          uint32
	ComputeUnitLimit   uint32
	ComputeUnitPrice   uint64
	LoadedAccountBytes uint32
}

func sanitizeRequestedHeapSize(len uint32) bool {
	return len >= MinHeapFrameBytes && len <= MaxHeapFrameBytes && (len%HeapFrameBytesMultiple == 0)
}

type instrError struct {
	index int
	err   error
}

func (e *instrError) Error() string {
	return fmt.Sprintf("instruction %d: %s", e.index, e.err)
}

func (e *instrError) Unwrap() error {
	return e.err
}

// FromInstructions reads the compute budget requested by instructions. Each
// kind of compute budget instruction may appear at most once.
func FromInstructions(instructions []message.Instruction) (*Limits, error) {
	var hasRequestedHeapSize bool
	var hasComputeUnitLimit bool
	var hasComputeUnitPrice bool
	var hasUpdatedLoadedAccountsDataSizeLimit bool

	var numNonComputeBudgetInstrs uint32
	var requestedHeapSize uint32
	var updatedComputeUnitLimit uint32
	var updatedLoadedAccountsDataSizeLimit uint32
	var updatedComputeUnitPrice uint64

	for i, instr := range instructions {
		if instr.ProgramID != solana.ComputeBudgetProgramAddr {
			numNonComputeBudgetInstrs++
			continue
		}

		decoder := bin.NewBorshDecoder(instr.Data)
		instrType, err := decoder.ReadUint8()
		if err != nil {
			return nil, &instrError{i, ErrInvalidInstructionData}
		}

		switch instrType {
		case InstrTypeRequestHeapFrame:
			var requestHeapFrame InstrRequestHeapFrame
			if err = requestHeapFrame.UnmarshalWithDecoder(decoder); err != nil {
				return nil, &instrError{i, ErrInvalidInstructionData}
			}
			if hasRequestedHeapSize {
				return nil, &instrError{i, ErrDuplicateInstruction}
			}
			if !sanitizeRequestedHeapSize(requestHeapFrame.Bytes) {
				return nil, &instrError{i, ErrInvalidInstructionData}
			}
			hasRequestedHeapSize = true
			requestedHeapSize = requestHeapFrame.Bytes

		case InstrTypeSetComputeUnitLimit:
			var setComputeUnitLimit InstrSetComputeUnitLimit
			if err = setComputeUnitLimit.UnmarshalWithDecoder(decoder); err != nil {
				return nil, &instrError{i, ErrInvalidInstructionData}
			}
			if hasComputeUnitLimit {
				return nil, &instrError{i, ErrDuplicateInstruction}
			}
			hasComputeUnitLimit = true
			updatedComputeUnitLimit = setComputeUnitLimit.ComputeUnitLimit

		case InstrTypeSetComputeUnitPrice:
			var setComputeUnitPrice InstrSetComputeUnitPrice
			if err = setComputeUnitPrice.UnmarshalWithDecoder(decoder); err != nil {
				return nil, &instrError{i, ErrInvalidInstructionData}
			}
			if hasComputeUnitPrice {
				return nil, &instrError{i, ErrDuplicateInstruction}
			}
			hasComputeUnitPrice = true
			updatedComputeUnitPrice = setComputeUnitPrice.MicroLamports

		case InstrTypeSetLoadedAccountsDataSizeLimit:
			var setLoadedAccountsDataSizeLimit InstrSetLoadedAccountsDataSizeLimit
			if err = setLoadedAccountsDataSizeLimit.UnmarshalWithDecoder(decoder); err != nil {
				return nil, &instrError{i, ErrInvalidInstructionData}
			}
			if hasUpdatedLoadedAccountsDataSizeLimit {
				return nil, &instrError{i, ErrDuplicateInstruction}
			}
			hasUpdatedLoadedAccountsDataSizeLimit = true
			updatedLoadedAccountsDataSizeLimit = setLoadedAccountsDataSizeLimit.Bytes

		default:
			return nil, &instrError{i, ErrInvalidInstructionData}
		}
	}

	limits := &Limits{
		HeapBytes:          MinHeapFrameBytes,
		ComputeUnitLimit:   uint32(min(uint64(numNonComputeBudgetInstrs)*DefaultInstructionComputeUnitLimit, MaxComputeUnitLimit)),
		ComputeUnitPrice:   updatedComputeUnitPrice,
		LoadedAccountBytes: MaxLoadedAccountsDataSizeBytes,
	}
	if hasRequestedHeapSize {
		limits.HeapBytes = requestedHeapSize
	}
	if hasComputeUnitLimit {
		limits.ComputeUnitLimit = min(updatedComputeUnitLimit, MaxComputeUnitLimit)
	}
	if hasUpdatedLoadedAccountsDataSizeLimit {
		limits.LoadedAccountBytes = min(updatedLoadedAccountsDataSizeLimit, MaxLoadedAccountsDataSizeBytes)
	}
	return limits, nil
}
