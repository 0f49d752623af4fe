package emulator

import (
	"github.com/ezrec/accvm/translate"
)

var f = translate.From

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	LineNo  int
	Address uint64
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (address 0x%04x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
