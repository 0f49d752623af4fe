// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator binds an assembled program listing to a CPU and its
// host devices.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/accvm/cpu"
	"github.com/ezrec/accvm/internal"
	"github.com/ezrec/accvm/io"
)

var _emulator_defines = map[string]string{
	"MEMORY_LIMIT": fmt.Sprintf("%#x", cpu.MEMORY_LIMIT),
}

// Emulator state. CPU + program listing + tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape io.Tape // Tape IO device.

	queue *io.Queue
}

// NewEmulator creates a new emulator with the given word width.
// Both IN and OUT are connected to the tape.
func NewEmulator(width uint) (emu *Emulator, err error) {
	cp, err := cpu.NewCpu(width)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     cp,
		Program: &cpu.Program{},
	}

	emu.Cpu.Input = &emu.Tape
	emu.Cpu.Output = &emu.Tape

	return
}

// Buffered dispatches tape output from a queue of the given depth,
// so that OUT does not wait for the tape writer.
func (emu *Emulator) Buffered(depth int) {
	if emu.queue != nil {
		return
	}

	emu.queue = io.NewQueue(&emu.Tape, depth)
	emu.Cpu.Output = emu.queue
	emu.Cpu.Input = io.InputFunc(emu.receive)
}

// receive reads from the tape once all queued output is written,
// so that the tape prompt follows the values before it.
func (emu *Emulator) receive() (value int64, err error) {
	if emu.queue != nil {
		err = emu.queue.Flush()
		if err != nil {
			return
		}
	}

	return emu.Tape.Receive()
}

// Close flushes any buffered output.
func (emu *Emulator) Close() (err error) {
	if emu.queue == nil {
		return
	}

	err = emu.queue.Close()
	emu.queue = nil
	emu.Cpu.Input = &emu.Tape
	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses source text into the emulator's program, and resets
// the emulator to run it.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	emu.Program = prog

	err = emu.Reset()

	return
}

// Load replaces the program with a listing of bare instructions, and
// resets the emulator to run it.
func (emu *Emulator) Load(insts []cpu.Instruction) (err error) {
	emu.Program = cpu.NewProgram(insts)

	err = emu.Reset()

	return
}

// Reset reloads the program into the CPU, and rewinds the tape.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Tape.Rewind()

	err = emu.Cpu.Load(emu.Program.Instructions())
	if err != nil {
		return
	}

	return
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint64 {
	return emu.Cpu.Reg(cpu.REG_PC).Uint()
}

// LineNo returns the current line number for the executing instruction,
// or 0 if the program counter is outside the program.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(int(emu.Pc()))
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the program has executed END.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	lineno := emu.LineNo()
	pc := emu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		if emu.Verbose {
			log.Printf("emulator: %v\n%v", err, emu.Cpu)
		}
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the program ends, then flushes any
// buffered output.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			break
		}
	}

	if emu.queue != nil {
		err = errors.Join(err, emu.Close())
	}

	return
}
