package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/accvm/io"
)

// Input is the device IN reads from.
type Input io.Input

// Output is the device OUT writes to.
type Output io.Output

// Status flag bits, as reported by Flags.Bits().
const (
	FLAG_CARRY    = uint8(0b0001) // Carry
	FLAG_NEGATIVE = uint8(0b0010) // Negative
	FLAG_OVERFLOW = uint8(0b0100) // Overflow, reserved.
	FLAG_ZERO     = uint8(0b1000) // Zero
)

// Flags is the status flag set. Only comparisons change it.
type Flags struct {
	Carry    bool
	Negative bool
	Overflow bool
	Zero     bool
}

// Bits returns the flags packed as FLAG_* bits.
func (fl Flags) Bits() (bits uint8) {
	for _, flag := range []struct {
		set bool
		bit uint8
	}{
		{fl.Carry, FLAG_CARRY},
		{fl.Negative, FLAG_NEGATIVE},
		{fl.Overflow, FLAG_OVERFLOW},
		{fl.Zero, FLAG_ZERO},
	} {
		if flag.set {
			bits |= flag.bit
		}
	}
	return
}

// Equal returns true if the last comparison found its operands equal.
func (fl Flags) Equal() bool {
	return !fl.Carry && !fl.Negative && fl.Zero
}

// classify sets the flags from the sign of a comparison result.
func (fl *Flags) classify(a, b int64) {
	switch {
	case a == b:
		fl.Carry, fl.Negative, fl.Zero = false, false, true
	case a < b:
		fl.Carry, fl.Negative, fl.Zero = true, true, false
	default:
		fl.Carry, fl.Negative, fl.Zero = false, false, false
	}
}

// Cpu is the simulation context for the accumulator machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Width    uint                     // Word width in bits.
	Register [REGISTER_COUNT]Register // Register bank, indexed by RegisterId.
	Memory   Memory                   // Main memory.
	Flags    Flags                    // Status flags.
	Halted   bool                     // Set when END executes, or on a fault.

	Input  Input  // Device for IN.
	Output Output // Device for OUT.

	Ticks int // CPU ticks counter.

	image uint64 // Words occupied by the loaded program.
}

// NewCpu creates a halted CPU with the given word width.
func NewCpu(width uint) (cpu *Cpu, err error) {
	if width < MIN_WIDTH || width > MAX_WIDTH {
		err = ErrWidthInvalid
		return
	}

	cpu = &Cpu{
		Width:  width,
		Memory: NewMemory(width),
		Halted: true,
	}
	for n := range cpu.Register {
		cpu.Register[n] = NewRegister(width)
	}

	return
}

// Defines for the cpu, usable in assembler expressions.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"WIDTH": fmt.Sprintf("%d", cpu.Width),
		"MASK":  fmt.Sprintf("%#x", Mask(cpu.Width)),
	})
}

// Reg returns the register for an id.
func (cpu *Cpu) Reg(id RegisterId) *Register {
	return &cpu.Register[id]
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder
	for id := REG_ACC; id < REGISTER_COUNT; id++ {
		fmt.Fprintf(&sb, "% 5s: %v\n", id.String(), cpu.Reg(id))
	}
	fmt.Fprintf(&sb, "% 5s: %04b\n", "flags", cpu.Flags.Bits())
	for address, value := range cpu.Memory.All() {
		fmt.Fprintf(&sb, "%5d| %#x\n", address, value)
	}
	return sb.String()
}

// Reset the CPU state.
// - Clears the registers, flags and memory.
// - Zeros statistics counters.
// - Halts the CPU.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	for n := range cpu.Register {
		cpu.Register[n].Set(0)
	}
	cpu.Memory.Reset()
	cpu.Flags = Flags{}
	cpu.image = 0
	cpu.Halted = true
	cpu.Ticks = 0
}

// Load resets the CPU, then places the instructions in memory from
// address zero and readies the CPU to run from there.
func (cpu *Cpu) Load(program []Instruction) (err error) {
	cpu.Reset()

	var address uint64
	for _, inst := range program {
		if inst.Opcode == OP_DATA {
			err = cpu.Memory.Write(address, inst.Operand)
		} else {
			err = cpu.Memory.Write(address, uint64(inst.Opcode))
			if err == nil {
				err = cpu.Memory.Write(address+1, inst.Operand)
			}
		}
		if err != nil {
			return
		}
		address += uint64(inst.Size())
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d instructions, %d words", len(program), address)
	}

	cpu.image = address

	cpu.Halted = false

	return
}

// Fetch reads the instruction at PC, updating MAR, MDR and CIR.
// Only the loaded program is executable; words stored past it are data.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	pc := cpu.Reg(REG_PC).Uint()
	if pc >= cpu.image {
		err = ErrPcRange
		return
	}

	cpu.Reg(REG_MAR).Set(pc)
	cpu.Reg(REG_MDR).Set(cpu.Memory.Read(pc))
	cpu.Reg(REG_CIR).Set(cpu.Reg(REG_MDR).Uint())

	code := cpu.Reg(REG_CIR).Uint()
	operand := cpu.Memory.Read(pc + 1)
	if code > 0xff {
		err = errors.Join(ErrOpcode{Opcode: Opcode(code & 0xff), Operand: operand}, ErrOpcodeInvalid)
		return
	}

	inst = Instruction{Opcode: Opcode(code), Operand: operand}

	return
}

// Tick executes a single fetch-decode-execute cycle.
// Any error halts the CPU.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.Halted = true
		}
	}()

	inst, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(inst)

	return
}

// Run ticks the CPU until it halts.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// register returns the register named by an operand.
func (cpu *Cpu) register(operand uint64) (reg *Register, err error) {
	id := RegisterId(operand)
	if operand >= REGISTER_COUNT || !id.Valid() {
		err = ErrRegisterInvalid
		return
	}
	reg = cpu.Reg(id)
	return
}

// compare sets the flags from ACC - value, both taken as signed words.
func (cpu *Cpu) compare(value uint64) {
	acc := cpu.Reg(REG_ACC).Int()
	cpu.Flags.classify(acc, Signed(value, cpu.Width))
	if cpu.Verbose {
		log.Printf("cpu: compare %d with %d: %v", acc, Signed(value, cpu.Width), cpu.Flags.Equal())
	}
}

// Execute executes a single decoded instruction at PC.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	pc := cpu.Reg(REG_PC)
	acc := cpu.Reg(REG_ACC)
	ix := cpu.Reg(REG_IX)
	mem := &cpu.Memory
	width := cpu.Width

	if cpu.Verbose {
		log.Printf("%04x: %v", pc.Uint(), inst)
	}

	operand := Wrap(inst.Operand, width)

	jumped := false
	jump := func(address uint64) {
		jumped = true
		pc.Set(address)
	}

	switch inst.Opcode {
	// Data movement
	case OP_LDM:
		acc.Set(operand)
	case OP_LDD:
		acc.Set(mem.Read(operand))
	case OP_LDI:
		acc.Set(mem.Read(mem.Read(operand)))
	case OP_LDX:
		acc.Set(mem.Read(operand + ix.Uint()))
	case OP_LDR:
		ix.Set(operand)
	case OP_MOV:
		var reg *Register
		reg, err = cpu.register(operand)
		if err != nil {
			return
		}
		ix.Set(reg.Uint())
	case OP_STO:
		err = mem.Write(operand, acc.Uint())
		if err != nil {
			return
		}
	case OP_LDR_ACC:
		ix.Set(acc.Uint())

	// Input/Output
	case OP_IN:
		if cpu.Input == nil {
			err = ErrDeviceMissing
			return
		}
		var value int64
		value, err = cpu.Input.Receive()
		if err != nil {
			return
		}
		acc.SetInt(value)
	case OP_OUT:
		if cpu.Output == nil {
			log.Printf("cpu: no output device, dropped %d", acc.Int())
			break
		}
		err = cpu.Output.Send(acc.Int())
		if err != nil {
			return
		}

	// Arithmetic
	case OP_ADD_ADDRESS:
		acc.Set(acc.Uint() + mem.Read(operand))
	case OP_ADD_IMMEDIATE:
		acc.Set(acc.Uint() + operand)
	case OP_SUB_ADDRESS:
		acc.Set(acc.Uint() - mem.Read(operand))
	case OP_SUB_IMMEDIATE:
		acc.Set(acc.Uint() - operand)
	case OP_INC:
		var reg *Register
		reg, err = cpu.register(operand)
		if err != nil {
			return
		}
		reg.Add(1)
	case OP_DEC:
		acc.Add(-1)

	// Branching
	case OP_JMP:
		jump(operand)
	case OP_JPE:
		if cpu.Flags.Equal() {
			jump(operand)
		}
	case OP_JPN:
		if !cpu.Flags.Equal() {
			jump(operand)
		}
	case OP_END:
		cpu.Halted = true
	case OP_JMR:
		if cpu.Flags.Equal() {
			jump(pc.Uint() + operand)
		}

	// Comparison
	case OP_CMP_ADDRESS:
		cpu.compare(mem.Read(operand))
	case OP_CMP_IMMEDIATE:
		cpu.compare(operand)
	case OP_CMI:
		cpu.compare(mem.Read(mem.Read(operand)))

	// Shifts
	case OP_LSL:
		acc.Set(ShiftLeft(acc.Uint(), operand, width))
	case OP_LSR:
		acc.Set(ShiftRight(acc.Uint(), operand, width))
	case OP_ASR:
		acc.Set(ShiftRightArith(acc.Uint(), operand, width))
	case OP_CSL:
		acc.Set(RotateLeft(acc.Uint(), operand, width))
	case OP_CSR:
		acc.Set(RotateRight(acc.Uint(), operand, width))

	// Bitwise
	case OP_AND_IMMEDIATE:
		acc.Set(acc.Uint() & operand)
	case OP_AND_ADDRESS:
		acc.Set(acc.Uint() & mem.Read(operand))
	case OP_OR_IMMEDIATE:
		acc.Set(acc.Uint() | operand)
	case OP_OR_ADDRESS:
		acc.Set(acc.Uint() | mem.Read(operand))
	case OP_XOR_IMMEDIATE:
		acc.Set(acc.Uint() ^ operand)
	case OP_XOR_ADDRESS:
		acc.Set(acc.Uint() ^ mem.Read(operand))
	case OP_NOT:
		acc.Set(^acc.Uint())

	case OP_DATA:
		err = ErrDataExecute
		return
	default:
		err = ErrOpcodeInvalid
		return
	}

	if !jumped {
		pc.Add(2)
	}

	cpu.Ticks += 1

	return
}
