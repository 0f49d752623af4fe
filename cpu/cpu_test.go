package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/accvm/io"
)

// runProgram loads and runs the instructions to completion.
func runProgram(t *testing.T, width uint, insts []Instruction, input ...int64) (cpu *Cpu, output *io.Recorder, err error) {
	cpu, err = NewCpu(width)
	if err != nil {
		t.Fatal(err)
	}

	output = &io.Recorder{}
	cpu.Input = &io.Values{Data: input}
	cpu.Output = output

	err = cpu.Load(insts)
	if err != nil {
		t.Fatal(err)
	}

	err = cpu.Run()

	return
}

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	for _, width := range []uint{0, 7, 65} {
		_, err := NewCpu(width)
		assert.ErrorIs(err, ErrWidthInvalid, width)
	}

	cpu, err := NewCpu(12)
	assert.NoError(err)
	assert.True(cpu.Halted)
	assert.Equal(uint(12), cpu.Reg(REG_PC).Width())
	assert.ErrorIs(cpu.Tick(), ErrHalted)

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal(map[string]string{"WIDTH": "12", "MASK": "0xfff"}, defines)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(8)
	assert.NoError(err)

	err = cpu.Load([]Instruction{
		{OP_LDM, 0x1ff},
		{OP_DATA, 7},
		{OP_END, 0},
	})
	assert.NoError(err)
	assert.False(cpu.Halted)
	assert.Equal(uint64(5), cpu.Memory.Len())
	assert.Equal(uint64(OP_LDM), cpu.Memory.Read(0))
	assert.Equal(uint64(0xff), cpu.Memory.Read(1))
	assert.Equal(uint64(7), cpu.Memory.Read(2))
	assert.Equal(uint64(OP_END), cpu.Memory.Read(3))
	assert.Equal(uint64(0), cpu.Memory.Read(100))

	inst, err := cpu.Fetch()
	assert.NoError(err)
	assert.Equal(Instruction{OP_LDM, 0xff}, inst)
	assert.Equal(uint64(0), cpu.Reg(REG_MAR).Uint())
	assert.Equal(uint64(OP_LDM), cpu.Reg(REG_MDR).Uint())
	assert.Equal(uint64(OP_LDM), cpu.Reg(REG_CIR).Uint())
}

func TestScenarios(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		width  uint
		source string
		acc    uint64
	}{
		{"add", 8, "LDM #2\nADD #3\nEND\n", 5},
		{"rotate", 8, "LDM B00000011\nCSL #2\nEND\n", 0b00001100},
		{"wrap-inc", 8, "LDM #255\nINC ACC\nEND\n", 0},
		{"wrap-dec", 8, "LDM #0\nDEC ACC\nEND\n", 255},
		{"wrap-literal", 8, "LDM &1ff\nEND\n", 0xff},
		{"negative", 16, "LDM #-5\nEND\n", 0xfffb},
	}

	for _, entry := range table {
		insts, err := Assemble(entry.source)
		if !assert.NoError(err, entry.name) {
			continue
		}
		cpu, _, err := runProgram(t, entry.width, insts)
		assert.NoError(err, entry.name)
		assert.True(cpu.Halted, entry.name)
		assert.Equal(entry.acc, cpu.Reg(REG_ACC).Uint(), entry.name)
	}
}

func TestSum(t *testing.T) {
	assert := assert.New(t)

	insts, err := Assemble(sumSource)
	assert.NoError(err)

	for _, width := range []uint{8, 16, 32} {
		_, output, err := runProgram(t, width, insts)
		assert.NoError(err, width)
		assert.Equal([]int64{15}, output.Data, width)
	}
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	// Memory image for the table below:
	//  0x20: 0x22 (pointer)
	//  0x21: 0x0f
	//  0x22: 0x33
	table := []struct {
		name   string
		inst   Instruction
		acc    uint64
		ix     uint64
		expAcc uint64
		expIx  uint64
		expPc  uint64
	}{
		{"LDM", Instruction{OP_LDM, 0x42}, 0, 0, 0x42, 0, 2},
		{"LDD", Instruction{OP_LDD, 0x21}, 0, 0, 0x0f, 0, 2},
		{"LDI", Instruction{OP_LDI, 0x20}, 0, 0, 0x33, 0, 2},
		{"LDX", Instruction{OP_LDX, 0x20}, 0, 2, 0x33, 2, 2},
		{"LDR", Instruction{OP_LDR, 0x11}, 0, 0, 0, 0x11, 2},
		{"LDR_ACC", Instruction{OP_LDR_ACC, 0}, 0x7, 0, 0x7, 0x7, 2},
		{"MOV ACC", Instruction{OP_MOV, uint64(REG_ACC)}, 0x9, 0, 0x9, 0x9, 2},
		{"MOV PC", Instruction{OP_MOV, uint64(REG_PC)}, 0, 0, 0, 0, 2},
		{"ADD_ADDRESS", Instruction{OP_ADD_ADDRESS, 0x21}, 1, 0, 0x10, 0, 2},
		{"ADD_IMMEDIATE", Instruction{OP_ADD_IMMEDIATE, 0xf0}, 0x20, 0, 0x10, 0, 2},
		{"SUB_ADDRESS", Instruction{OP_SUB_ADDRESS, 0x21}, 0x10, 0, 0x01, 0, 2},
		{"SUB_IMMEDIATE", Instruction{OP_SUB_IMMEDIATE, 2}, 1, 0, 0xff, 0, 2},
		{"INC ACC", Instruction{OP_INC, uint64(REG_ACC)}, 0xff, 0, 0, 0, 2},
		{"INC IX", Instruction{OP_INC, uint64(REG_IX)}, 0, 4, 0, 5, 2},
		{"INC PC", Instruction{OP_INC, uint64(REG_PC)}, 0, 0, 0, 0, 3},
		{"DEC", Instruction{OP_DEC, 0x99}, 0, 0, 0xff, 0, 2},
		{"JMP", Instruction{OP_JMP, 0x40}, 0, 0, 0, 0, 0x40},
		{"JPN", Instruction{OP_JPN, 0x40}, 0, 0, 0, 0, 0x40},
		{"JPE", Instruction{OP_JPE, 0x40}, 0, 0, 0, 0, 2},
		{"JMR", Instruction{OP_JMR, 0x40}, 0, 0, 0, 0, 2},
		{"END", Instruction{OP_END, 0}, 0, 0, 0, 0, 2},
		{"LSL", Instruction{OP_LSL, 3}, 0x31, 0, 0x88, 0, 2},
		{"LSR", Instruction{OP_LSR, 3}, 0x88, 0, 0x11, 0, 2},
		{"LSR wide", Instruction{OP_LSR, 9}, 0x88, 0, 0, 0, 2},
		{"ASR", Instruction{OP_ASR, 2}, 0b10110000, 0, 0b11101100, 0, 2},
		{"ASR positive", Instruction{OP_ASR, 2}, 0b01110000, 0, 0b00011100, 0, 2},
		{"CSL", Instruction{OP_CSL, 1}, 0x81, 0, 0x03, 0, 2},
		{"CSR", Instruction{OP_CSR, 1}, 0x81, 0, 0xc0, 0, 2},
		{"CSR full", Instruction{OP_CSR, 8}, 0x81, 0, 0x81, 0, 2},
		{"AND_IMMEDIATE", Instruction{OP_AND_IMMEDIATE, 0x0c}, 0x3a, 0, 0x08, 0, 2},
		{"AND_ADDRESS", Instruction{OP_AND_ADDRESS, 0x22}, 0xf0, 0, 0x30, 0, 2},
		{"OR_IMMEDIATE", Instruction{OP_OR_IMMEDIATE, 0x0c}, 0x30, 0, 0x3c, 0, 2},
		{"OR_ADDRESS", Instruction{OP_OR_ADDRESS, 0x21}, 0x30, 0, 0x3f, 0, 2},
		{"XOR_IMMEDIATE", Instruction{OP_XOR_IMMEDIATE, 0xff}, 0x0f, 0, 0xf0, 0, 2},
		{"XOR_ADDRESS", Instruction{OP_XOR_ADDRESS, 0x21}, 0x0f, 0, 0x00, 0, 2},
		{"NOT", Instruction{OP_NOT, 0}, 0x0f, 0, 0xf0, 0, 2},
	}

	for _, entry := range table {
		cpu, err := NewCpu(8)
		assert.NoError(err)

		assert.NoError(cpu.Memory.Write(0x20, 0x22))
		assert.NoError(cpu.Memory.Write(0x21, 0x0f))
		assert.NoError(cpu.Memory.Write(0x22, 0x33))
		cpu.Reg(REG_ACC).Set(entry.acc)
		cpu.Reg(REG_IX).Set(entry.ix)

		err = cpu.Execute(entry.inst)
		assert.NoError(err, entry.name)
		assert.Equal(entry.expAcc, cpu.Reg(REG_ACC).Uint(), entry.name)
		assert.Equal(entry.expIx, cpu.Reg(REG_IX).Uint(), entry.name)
		assert.Equal(entry.expPc, cpu.Reg(REG_PC).Uint(), entry.name)
	}
}

func TestStore(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(8)
	assert.NoError(err)

	cpu.Reg(REG_ACC).Set(0x5a)
	assert.NoError(cpu.Execute(Instruction{OP_STO, 0x30}))
	assert.Equal(uint64(0x5a), cpu.Memory.Read(0x30))

	// Operands wrap to the word width before use.
	assert.NoError(cpu.Execute(Instruction{OP_STO, 0x131}))
	assert.Equal(uint64(0x5a), cpu.Memory.Read(0x31))
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name  string
		acc   uint64
		inst  Instruction
		flags Flags
	}{
		{"equal", 5, Instruction{OP_CMP_IMMEDIATE, 5}, Flags{Zero: true}},
		{"less", 3, Instruction{OP_CMP_IMMEDIATE, 5}, Flags{Carry: true, Negative: true}},
		{"greater", 7, Instruction{OP_CMP_IMMEDIATE, 5}, Flags{}},
		{"negative equal", 0xfb, Instruction{OP_CMP_IMMEDIATE, 0xfb}, Flags{Zero: true}},
		{"negative less", 0xfb, Instruction{OP_CMP_IMMEDIATE, 1}, Flags{Carry: true, Negative: true}},
		{"negative greater", 1, Instruction{OP_CMP_IMMEDIATE, 0xfb}, Flags{}},
		{"address", 0x0f, Instruction{OP_CMP_ADDRESS, 0x21}, Flags{Zero: true}},
		{"indirect", 0x33, Instruction{OP_CMI, 0x20}, Flags{Zero: true}},
	}

	for _, entry := range table {
		cpu, err := NewCpu(8)
		assert.NoError(err)

		assert.NoError(cpu.Memory.Write(0x20, 0x22))
		assert.NoError(cpu.Memory.Write(0x21, 0x0f))
		assert.NoError(cpu.Memory.Write(0x22, 0x33))
		cpu.Reg(REG_ACC).Set(entry.acc)

		assert.NoError(cpu.Execute(entry.inst), entry.name)
		assert.Equal(entry.flags, cpu.Flags, entry.name)
		assert.Equal(entry.flags.Zero, cpu.Flags.Equal(), entry.name)
		assert.False(cpu.Flags.Overflow, entry.name)
	}

	flags := Flags{Carry: true, Negative: true, Zero: true}
	assert.Equal(FLAG_CARRY|FLAG_NEGATIVE|FLAG_ZERO, flags.Bits())
	assert.False(flags.Equal())
}

func TestBranch(t *testing.T) {
	assert := assert.New(t)

	// Skips the OUT #1 via JPE, then the OUT #2 via JMR.
	source := `
        LDM #4
        CMP #4
        JPE skip
        LDM #1
        OUT
skip:   JMR #6
        LDM #2
        OUT
        LDM #3
        OUT
        END
`
	insts, err := Assemble(source)
	assert.NoError(err)

	_, output, err := runProgram(t, 8, insts)
	assert.NoError(err)
	assert.Equal([]int64{3}, output.Data)
}

func TestIo(t *testing.T) {
	assert := assert.New(t)

	insts := []Instruction{
		{OP_IN, 0},
		{OP_STO, 0x16},
		{OP_LDD, 0x16},
		{OP_OUT, 0},
		{OP_IN, 0},
		{OP_OUT, 0},
		{OP_END, 0},
	}

	_, output, err := runProgram(t, 8, insts, -15, 256)
	assert.NoError(err)
	assert.Equal([]int64{-15, 0}, output.Data)

	// IN with no input device.
	cpu, err := NewCpu(8)
	assert.NoError(err)
	assert.NoError(cpu.Load(insts))
	err = cpu.Run()
	assert.ErrorIs(err, ErrDeviceMissing)
	assert.ErrorIs(err, ErrExecute)
	assert.True(cpu.Halted)

	// OUT with no output device drops the value.
	cpu, err = NewCpu(8)
	assert.NoError(err)
	assert.NoError(cpu.Load([]Instruction{{OP_OUT, 0}, {OP_END, 0}}))
	assert.NoError(cpu.Run())

	// Input exhausted.
	_, _, err = runProgram(t, 8, insts[:1])
	assert.ErrorIs(err, io.ErrInputEmpty)
}

func TestFaults(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name  string
		insts []Instruction
		err   error
	}{
		{"data", []Instruction{{OP_LDM, 1}, {OP_DATA, 0xff}, {OP_END, 0}}, ErrDataExecute},
		{"opcode", []Instruction{{Opcode(0x77), 0}, {OP_END, 0}}, ErrOpcodeInvalid},
		{"pc", []Instruction{{OP_LDM, 1}}, ErrPcRange},
		{"jump", []Instruction{{OP_JMP, 0x80}, {OP_END, 0}}, ErrPcRange},
		{"gap", []Instruction{{OP_LDM, 1}, {OP_STO, 0x40}, {OP_JMP, 0x20}, {OP_OUT, 0}, {OP_END, 0}}, ErrPcRange},
		{"register", []Instruction{{OP_INC, 6}, {OP_END, 0}}, ErrRegisterInvalid},
		{"mov", []Instruction{{OP_MOV, 0xff}, {OP_END, 0}}, ErrRegisterInvalid},
	}

	for _, entry := range table {
		cpu, _, err := runProgram(t, 8, entry.insts)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, ErrExecute, entry.name)
		assert.True(cpu.Halted, entry.name)
		assert.ErrorIs(cpu.Tick(), ErrHalted, entry.name)
	}

	// Words stored past the program are never executed.
	cpu, rec, err := runProgram(t, 8, []Instruction{{OP_LDM, 1}, {OP_STO, 0x40}, {OP_JMP, 0x20}, {OP_OUT, 0}, {OP_END, 0}})
	assert.ErrorIs(err, ErrPcRange)
	assert.Equal(3, cpu.Ticks)
	assert.Equal(uint64(0x20), cpu.Reg(REG_PC).Uint())
	assert.Empty(rec.Data)

	// Faults carry the failing instruction.
	_, _, err = runProgram(t, 8, []Instruction{{OP_LDM, 1}, {OP_DATA, 0xff}})
	assert.ErrorIs(err, ErrOpcode{OP_DATA, 0})

	// Memory above the arena limit.
	cpu, err = NewCpu(32)
	assert.NoError(err)
	cpu.Reg(REG_ACC).Set(1)
	err = cpu.Execute(Instruction{OP_STO, MEMORY_LIMIT})
	assert.ErrorIs(err, ErrMemoryRange)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(8)
	assert.NoError(err)
	assert.NoError(cpu.Load([]Instruction{{OP_LDM, 0xfe}, {OP_END, 0}}))
	assert.NoError(cpu.Run())

	text := cpu.String()
	assert.Contains(text, "ACC: 0xfe (-2)")
	assert.Contains(text, "flags: 0000")
	assert.Equal(2, cpu.Ticks)

	cpu.Reset()
	assert.True(cpu.Halted)
	assert.Equal(uint64(0), cpu.Reg(REG_ACC).Uint())
	assert.Equal(uint64(0), cpu.Memory.Len())
	assert.Equal(0, cpu.Ticks)
}
