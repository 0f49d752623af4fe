package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Line is an assembled source line.
type Line struct {
	LineNo      int      // Source line number, or 0 if unknown.
	Address     int      // Address of the first word of the instruction.
	Words       []string // Source tokens.
	Label       string   // Declared label, if any.
	Instruction Instruction
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// NewProgram creates a listing for instructions without source text.
func NewProgram(insts []Instruction) (prog *Program) {
	prog = &Program{Lines: make([]Line, 0, len(insts))}

	address := 0
	for _, inst := range insts {
		prog.Lines = append(prog.Lines, Line{Address: address, Instruction: inst})
		address += inst.Size()
	}

	return
}

type Debug struct {
	*Line
	Index int // Word of the instruction: 0 for the opcode, 1 for the operand.
}

// Debug finds the line containing an address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, line := range prog.Lines {
		if address >= line.Address && address < line.Address+line.Instruction.Size() {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: address - line.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of addresses the program occupies.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size += line.Instruction.Size()
	}
	return
}

// Instructions returns the machine instructions of the program.
func (prog *Program) Instructions() (insts []Instruction) {
	insts = make([]Instruction, 0, len(prog.Lines))
	for _, inst := range prog.Codes() {
		insts = append(insts, inst)
	}
	return
}

// Codes iterates over the instructions by address.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(address int, inst Instruction) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Address, line.Instruction) {
				return
			}
		}
	}
}

// String returns the program listing.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, line := range prog.Lines {
		label := ""
		if len(line.Label) != 0 {
			label = line.Label + ":"
		}
		fmt.Fprintf(&sb, "%04x %-10s %-20v ; %v\n", line.Address, label, line.Instruction, strings.Join(line.Words, " "))
	}
	return sb.String()
}
