package cpu

import (
	"fmt"
)

// RegisterId is the index of a register, as encoded in MOV and INC operands.
type RegisterId int

//go:generate go tool stringer -linecomment -type=RegisterId
const (
	REG_ACC = RegisterId(0) // ACC
	REG_CIR = RegisterId(1) // CIR
	REG_IX  = RegisterId(2) // IX
	REG_MAR = RegisterId(3) // MAR
	REG_MDR = RegisterId(4) // MDR
	REG_PC  = RegisterId(5) // PC

	REGISTER_COUNT = 6 // Number of registers in the register bank.
)

// LookupRegister returns the register id of a register name.
func LookupRegister(name string) (id RegisterId, ok bool) {
	for id = REG_ACC; id < REGISTER_COUNT; id++ {
		if id.String() == name {
			ok = true
			return
		}
	}
	id = 0
	return
}

// Valid returns true if the id names a register.
func (id RegisterId) Valid() bool {
	return id >= 0 && id < REGISTER_COUNT
}

// Register is a fixed width word cell. Every write wraps to the width.
type Register struct {
	width uint
	value uint64
}

// NewRegister creates a zeroed register of the given width.
func NewRegister(width uint) Register {
	return Register{width: width}
}

// Width returns the register width in bits.
func (reg *Register) Width() uint {
	return reg.width
}

// Set assigns the wrapped value.
func (reg *Register) Set(value uint64) {
	reg.value = Wrap(value, reg.width)
}

// SetInt assigns the two's complement pattern of value.
func (reg *Register) SetInt(value int64) {
	reg.value = WrapInt(value, reg.width)
}

// Add applies a signed delta, wrapping the result.
func (reg *Register) Add(delta int64) {
	reg.value = Wrap(reg.value+uint64(delta), reg.width)
}

// Uint returns the raw bit pattern.
func (reg *Register) Uint() uint64 {
	return reg.value
}

// Int returns the two's complement interpretation of the register.
func (reg *Register) Int() int64 {
	return Signed(reg.value, reg.width)
}

func (reg *Register) String() string {
	digits := int(reg.width+3) / 4
	return fmt.Sprintf("0x%0*x (%d)", digits, reg.value, reg.Int())
}
