package cpu

import (
	"errors"

	"github.com/ezrec/accvm/translate"
)

var f = translate.From

// Error kinds. Use errors.Is() to classify any error from this package.
var (
	ErrAssembly = errors.New(f("assembly"))
	ErrLink     = errors.New(f("link"))
	ErrExecute  = errors.New(f("execute"))
)

// kindError is a sentinel error belonging to an error kind.
type kindError struct {
	kind error
	text string
}

func (err *kindError) Error() string {
	return err.text
}

func (err *kindError) Is(target error) bool {
	return target == err.kind
}

var (
	// Cpu errors
	ErrWidthInvalid    = errors.New(f("word width invalid"))
	ErrHalted          = &kindError{ErrExecute, f("cpu halted")}
	ErrPcRange         = &kindError{ErrExecute, f("pc outside of program")}
	ErrDataExecute     = &kindError{ErrExecute, f("data executed as instruction")}
	ErrOpcodeInvalid   = &kindError{ErrExecute, f("opcode invalid")}
	ErrRegisterInvalid = &kindError{ErrExecute, f("register invalid")}
	ErrMemoryRange     = &kindError{ErrExecute, f("memory address out of range")}
	ErrDeviceMissing   = &kindError{ErrExecute, f("device missing")}

	// Assembler errors
	ErrEndMissing      = &kindError{ErrAssembly, f("missing END instruction")}
	ErrMnemonicInvalid = &kindError{ErrAssembly, f("mnemonic invalid")}
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) bool {
	return err == ErrLink
}

type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x operand 0x%x", uint8(eo.Opcode), eo.Operand)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) bool {
	return target == ErrAssembly
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Is(target error) bool {
	return target == ErrAssembly
}
