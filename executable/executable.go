// Package executable stores assembled programs in a versioned binary
// container.
//
// A container is a fixed size header followed by the instruction stream.
// Each instruction is an opcode and an operand, both little endian words
// of the container's word width.
package executable

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/ezrec/accvm/cpu"
	devio "github.com/ezrec/accvm/io"
)

const (
	VERSION     = "1"                        // Container format version.
	DATE_FORMAT = "2006-01-02T15:04:05.000Z" // Generation timestamp format.

	HEADER_SIZE = 1 + 2 + 24 + 64 + 4 // Size of a packed Header.
)

// Header is the on-disk container header.
type Header struct {
	Version string `struc:"[1]byte"`  // VERSION
	Width   string `struc:"[2]byte"`  // Decimal word width, space padded.
	Date    string `struc:"[24]byte"` // DATE_FORMAT timestamp, NUL padded.
	Name    string `struc:"[64]byte"` // Source name, NUL padded.
	Bits    uint32 // Word width, repeated.
}

// Executable is an assembled program and its provenance.
type Executable struct {
	Verbose bool // If set, verbosely logs execution.

	Width        uint      // Word width, 8 or 16.
	Date         time.Time // Generation time.
	Name         string    // Source name.
	Instructions []cpu.Instruction
}

// validWidth returns true if the width can be stored in a container.
func validWidth(width uint) bool {
	return width == 8 || width == 16
}

// fixed pads or truncates a string to size bytes.
func fixed(text string, size int, pad byte) string {
	if len(text) >= size {
		return text[:size]
	}
	return text + strings.Repeat(string(pad), size-len(text))
}

// New creates an executable from instructions, stamped with the current time.
func New(name string, width uint, insts []cpu.Instruction) (exe *Executable, err error) {
	if !validWidth(width) {
		err = errors.Wrapf(ErrWidth, "%d", width)
		return
	}

	exe = &Executable{
		Width:        width,
		Date:         time.Now().UTC().Truncate(time.Millisecond),
		Name:         name,
		Instructions: insts,
	}

	return
}

// Assemble creates an executable from assembler source.
// The executable is named by the base name of name.
func Assemble(name string, width uint, source io.Reader) (exe *Executable, err error) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	exe, err = New(filepath.Base(name), width, prog.Instructions())

	return
}

// MarshalBinary encodes the executable as a container.
func (exe *Executable) MarshalBinary() (data []byte, err error) {
	if !validWidth(exe.Width) {
		err = errors.Wrapf(ErrWidth, "%d", exe.Width)
		return
	}

	header := &Header{
		Version: VERSION,
		Width:   fixed(strconv.Itoa(int(exe.Width)), 2, ' '),
		Date:    fixed(exe.Date.UTC().Format(DATE_FORMAT), 24, 0),
		Name:    fixed(exe.Name, 64, 0),
		Bits:    uint32(exe.Width),
	}

	var buf bytes.Buffer
	err = struc.PackWithOrder(&buf, header, binary.LittleEndian)
	if err != nil {
		err = errors.Wrap(err, "failed to pack header")
		return
	}

	word := make([]byte, 8)
	size := int(exe.Width / 8)
	for _, inst := range exe.Instructions {
		for _, value := range []uint64{uint64(inst.Opcode), cpu.Wrap(inst.Operand, exe.Width)} {
			binary.LittleEndian.PutUint64(word, value)
			buf.Write(word[:size])
		}
	}

	data = buf.Bytes()

	return
}

// UnmarshalBinary decodes a container. The version is checked before
// any other field is interpreted.
func (exe *Executable) UnmarshalBinary(data []byte) (err error) {
	if len(data) == 0 || string(data[:1]) != VERSION {
		found := ""
		if len(data) != 0 {
			found = string(data[:1])
		}
		err = errors.Wrapf(ErrVersion, "found %q, expected %q", found, VERSION)
		return
	}

	if len(data) < HEADER_SIZE {
		err = errors.Wrapf(ErrHeader, "%d bytes", len(data))
		return
	}

	var header Header
	err = struc.UnpackWithOrder(bytes.NewReader(data[:HEADER_SIZE]), &header, binary.LittleEndian)
	if err != nil {
		err = errors.Wrap(ErrHeader, err.Error())
		return
	}

	width, err := strconv.Atoi(strings.TrimSpace(header.Width))
	if err != nil || !validWidth(uint(width)) {
		err = errors.Wrapf(ErrHeader, "width %q", header.Width)
		return
	}
	if uint32(width) != header.Bits {
		err = errors.Wrapf(ErrHeader, "width %d, bits %d", width, header.Bits)
		return
	}

	date, err := time.Parse(DATE_FORMAT, strings.TrimRight(header.Date, "\x00"))
	if err != nil {
		err = errors.Wrap(ErrHeader, err.Error())
		return
	}

	body := data[HEADER_SIZE:]
	size := width / 8
	if len(body)%(2*size) != 0 {
		err = errors.Wrapf(ErrBody, "%d bytes is not a whole number of records", len(body))
		return
	}

	word := make([]byte, 8)
	value := func() uint64 {
		clear(word)
		copy(word, body[:size])
		body = body[size:]
		return binary.LittleEndian.Uint64(word)
	}

	insts := make([]cpu.Instruction, 0, len(body)/(2*size))
	for len(body) != 0 {
		opcode := value()
		operand := value()
		if opcode > 0xff {
			err = errors.Wrapf(ErrBody, "record %d: opcode %#x", len(insts), opcode)
			return
		}
		insts = append(insts, cpu.Instruction{Opcode: cpu.Opcode(opcode), Operand: operand})
	}

	exe.Width = uint(width)
	exe.Date = date
	exe.Name = strings.TrimRight(header.Name, "\x00")
	exe.Instructions = insts

	return
}

// Read decodes a container from a reader.
func Read(r io.Reader) (exe *Executable, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		err = errors.Wrap(err, "failed to read executable")
		return
	}

	exe = &Executable{}
	err = exe.UnmarshalBinary(data)
	if err != nil {
		exe = nil
		return
	}

	return
}

// Write encodes the executable to a writer.
func (exe *Executable) Write(w io.Writer) (err error) {
	data, err := exe.MarshalBinary()
	if err != nil {
		return
	}

	_, err = w.Write(data)
	if err != nil {
		err = errors.Wrap(err, "failed to write executable")
		return
	}

	return
}

// Load reads a container file from a file system.
func Load(fsys fs.FS, name string) (exe *Executable, err error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		err = errors.Wrapf(err, "failed to load %v", name)
		return
	}

	exe = &Executable{}
	err = exe.UnmarshalBinary(data)
	if err != nil {
		exe = nil
		err = errors.Wrap(err, name)
		return
	}

	return
}

// Store writes the executable to a file.
func (exe *Executable) Store(path string) (err error) {
	data, err := exe.MarshalBinary()
	if err != nil {
		return
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		err = errors.Wrapf(err, "failed to store %v", path)
		return
	}

	return
}

// Execute runs the executable to completion on a fresh CPU.
func (exe *Executable) Execute(input devio.Input, output devio.Output) (err error) {
	cp, err := cpu.NewCpu(exe.Width)
	if err != nil {
		return
	}

	cp.Verbose = exe.Verbose
	cp.Input = input
	cp.Output = output

	err = cp.Load(exe.Instructions)
	if err != nil {
		return
	}

	err = cp.Run()
	if exe.Verbose {
		log.Printf("%v: %d ticks", exe.Name, cp.Ticks)
	}

	return
}

func (exe *Executable) String() string {
	return fmt.Sprintf("%v: %d-bit, %d instructions, %v", exe.Name, exe.Width, len(exe.Instructions), exe.Date.Format(DATE_FORMAT))
}
