package cpu

import (
	"fmt"
)

// Opcode is the numeric operation code of a machine instruction.
// The upper nibble is the instruction family.
type Opcode byte

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_LDM     = Opcode(0x00) // LDM
	OP_LDD     = Opcode(0x01) // LDD
	OP_LDI     = Opcode(0x02) // LDI
	OP_LDX     = Opcode(0x03) // LDX
	OP_LDR     = Opcode(0x04) // LDR
	OP_MOV     = Opcode(0x05) // MOV
	OP_STO     = Opcode(0x06) // STO
	OP_LDR_ACC = Opcode(0x07) // LDR_ACC

	OP_IN  = Opcode(0x10) // IN
	OP_OUT = Opcode(0x11) // OUT

	OP_ADD_ADDRESS   = Opcode(0x20) // ADD_ADDRESS
	OP_ADD_IMMEDIATE = Opcode(0x21) // ADD_IMMEDIATE
	OP_SUB_ADDRESS   = Opcode(0x22) // SUB_ADDRESS
	OP_SUB_IMMEDIATE = Opcode(0x23) // SUB_IMMEDIATE
	OP_INC           = Opcode(0x24) // INC
	OP_DEC           = Opcode(0x25) // DEC

	OP_JMP = Opcode(0x30) // JMP
	OP_JPE = Opcode(0x31) // JPE
	OP_JPN = Opcode(0x32) // JPN
	OP_END = Opcode(0x33) // END
	OP_JMR = Opcode(0x34) // JMR

	OP_CMP_ADDRESS   = Opcode(0x40) // CMP_ADDRESS
	OP_CMP_IMMEDIATE = Opcode(0x41) // CMP_IMMEDIATE
	OP_CMI           = Opcode(0x42) // CMI

	OP_LSL = Opcode(0x51) // LSL
	OP_LSR = Opcode(0x52) // LSR
	OP_ASR = Opcode(0x53) // ASR
	OP_CSL = Opcode(0x54) // CSL
	OP_CSR = Opcode(0x55) // CSR

	OP_AND_IMMEDIATE = Opcode(0x60) // AND_IMMEDIATE
	OP_AND_ADDRESS   = Opcode(0x61) // AND_ADDRESS
	OP_OR_IMMEDIATE  = Opcode(0x62) // OR_IMMEDIATE
	OP_OR_ADDRESS    = Opcode(0x63) // OR_ADDRESS
	OP_XOR_IMMEDIATE = Opcode(0x64) // XOR_IMMEDIATE
	OP_XOR_ADDRESS   = Opcode(0x65) // XOR_ADDRESS
	OP_NOT           = Opcode(0x66) // NOT

	OP_DATA = Opcode(0xff) // DATA
)

// CodeFamily is the instruction family of an opcode.
type CodeFamily int

//go:generate go tool stringer -linecomment -type=CodeFamily
const (
	FAMILY_DATA_MOVE  = CodeFamily(0x0) // data-move
	FAMILY_IO         = CodeFamily(0x1) // io
	FAMILY_ARITHMETIC = CodeFamily(0x2) // arithmetic
	FAMILY_BRANCH     = CodeFamily(0x3) // branch
	FAMILY_COMPARE    = CodeFamily(0x4) // compare
	FAMILY_SHIFT      = CodeFamily(0x5) // shift
	FAMILY_BITWISE    = CodeFamily(0x6) // bitwise
	FAMILY_DATA       = CodeFamily(0xf) // data
)

// allOpcodes lists every executable opcode, in table order.
var allOpcodes = []Opcode{
	OP_LDM, OP_LDD, OP_LDI, OP_LDX, OP_LDR, OP_MOV, OP_STO, OP_LDR_ACC,
	OP_IN, OP_OUT,
	OP_ADD_ADDRESS, OP_ADD_IMMEDIATE, OP_SUB_ADDRESS, OP_SUB_IMMEDIATE, OP_INC, OP_DEC,
	OP_JMP, OP_JPE, OP_JPN, OP_END, OP_JMR,
	OP_CMP_ADDRESS, OP_CMP_IMMEDIATE, OP_CMI,
	OP_LSL, OP_LSR, OP_ASR, OP_CSL, OP_CSR,
	OP_AND_IMMEDIATE, OP_AND_ADDRESS, OP_OR_IMMEDIATE, OP_OR_ADDRESS,
	OP_XOR_IMMEDIATE, OP_XOR_ADDRESS, OP_NOT,
}

// mnemonicMap maps mnemonic names to opcodes. OP_DATA has no mnemonic.
var mnemonicMap = func() map[string]Opcode {
	table := make(map[string]Opcode, len(allOpcodes))
	for _, op := range allOpcodes {
		table[op.String()] = op
	}
	return table
}()

// Opcodes returns every executable opcode, in table order.
func Opcodes() []Opcode {
	return append([]Opcode(nil), allOpcodes...)
}

// LookupMnemonic returns the opcode for a mnemonic name.
func LookupMnemonic(name string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[name]
	return
}

// Family returns the instruction family of the opcode.
func (op Opcode) Family() CodeFamily {
	return CodeFamily(op >> 4)
}

// Valid returns true if the opcode is executable.
func (op Opcode) Valid() bool {
	_, ok := mnemonicMap[op.String()]
	return ok
}

// Mnemonic returns the mnemonic of the opcode, or "UNKNOWN".
func (op Opcode) Mnemonic() string {
	if op == OP_DATA || op.Valid() {
		return op.String()
	}
	return "UNKNOWN"
}

// Instruction is a single machine instruction, as stored in memory
// and in an executable.
type Instruction struct {
	Opcode  Opcode
	Operand uint64
}

// Size returns the number of addresses the instruction occupies in memory.
func (inst Instruction) Size() int {
	if inst.Opcode == OP_DATA {
		return 1
	}
	return 2
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	if inst.Opcode == OP_DATA {
		return fmt.Sprintf("#%d", inst.Operand)
	}
	return fmt.Sprintf("%v 0x%x", inst.Opcode.Mnemonic(), inst.Operand)
}
