// Package computebudget encodes and interprets instructions of the compute
// budget program.
package computebudget

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"go.firedancer.io/solmsg/pkg/message"
	"go.firedancer.io/solmsg/pkg/solana"
)

const (
	MinHeapFrameBytes                  = (32 * 1024)
	MaxHeapFrameBytes                  = (256 * 1024)
	HeapFrameBytesMultiple             = 1024
	DefaultInstructionComputeUnitLimit = 200000
	MaxComputeUnitLimit                = 1400000
	MaxLoadedAccountsDataSizeBytes     = (64 * 1024 * 1024)
)

const (
	InstrTypeRequestHeapFrame               = 1
	InstrTypeSetComputeUnitLimit            = 2
	InstrTypeSetComputeUnitPrice            = 3
	InstrTypeSetLoadedAccountsDataSizeLimit = 4
)

type InstrRequestHeapFrame struct {
	Bytes uint32
}

type InstrSetComputeUnitLimit struct {
	ComputeUnitLimit uint32
}

type InstrSetComputeUnitPrice struct {
	MicroLamports uint64
}

type InstrSetLoadedAccountsDataSizeLimit struct {
	Bytes uint32
}

func (requestHeapFrame *InstrRequestHeapFrame) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	requestHeapFrame.Bytes, err = decoder.ReadUint32(bin.LE)
	return err
}

func (requestHeapFrame InstrRequestHeapFrame) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteUint8(InstrTypeRequestHeapFrame)
	if err != nil {
		return err
	}
	return encoder.WriteUint32(requestHeapFrame.Bytes, bin.LE)
}

func (setComputeUnitLimit *InstrSetComputeUnitLimit) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	setComputeUnitLimit.ComputeUnitLimit, err = decoder.ReadUint32(bin.LE)
	return err
}

func (setComputeUnitLimit InstrSetComputeUnitLimit) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteUint8(InstrTypeSetComputeUnitLimit)
	if err != nil {
		return err
	}
	return encoder.WriteUint32(setComputeUnitLimit.ComputeUnitLimit, bin.LE)
}

func (setComputeUnitPrice *InstrSetComputeUnitPrice) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	setComputeUnitPrice.MicroLamports, err = decoder.ReadUint64(bin.LE)
	return err
}

func (setComputeUnitPrice InstrSetComputeUnitPrice) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteUint8(InstrTypeSetComputeUnitPrice)
	if err != nil {
		return err
	}
	return encoder.WriteUint64(setComputeUnitPrice.MicroLamports, bin.LE)
}

func (setLoadedAccountsDataSizeLimit *InstrSetLoadedAccountsDataSizeLimit) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	setLoadedAccountsDataSizeLimit.Bytes, err = decoder.ReadUint32(bin.LE)
	return err
}

func (setLoadedAccountsDataSizeLimit InstrSetLoadedAccountsDataSizeLimit) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteUint8(InstrTypeSetLoadedAccountsDataSizeLimit)
	if err != nil {
		return err
	}
	return encoder.WriteUint32(setLoadedAccountsDataSizeLimit.Bytes, bin.LE)
}

type marshaler interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
}

func newInstruction(instr marshaler) message.Instruction {
	buffer := new(bytes.Buffer)
	// writes to a bytes.Buffer do not fail
	_ = instr.MarshalWithEncoder(bin.NewBorshEncoder(buffer))
	return message.Instruction{ProgramID: solana.ComputeBudgetProgramAddr, Data: buffer.Bytes()}
}

func RequestHeapFrame(bytes uint32) message.Instruction {
	return newInstruction(InstrRequestHeapFrame{Bytes: bytes})
}

func SetComputeUnitLimit(units uint32) message.Instruction {
	return newInstruction(InstrSetComputeUnitLimit{ComputeUnitLimit: units})
}

// SetComputeUnitPrice sets the priority fee paid per compute unit, in
// micro-lamports.
func SetComputeUnitPrice(microLamports uint64) message.Instruction {
	return newInstruction(InstrSetComputeUnitPrice{MicroLamports: microLamports})
}

func SetLoadedAccountsDataSizeLimit(bytes uint32) message.Instruction {
	return newInstruction(InstrSetLoadedAccountsDataSizeLimit{Bytes: bytes})
}
