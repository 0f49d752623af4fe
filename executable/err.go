package executable

import (
	"github.com/pkg/errors"

	"github.com/ezrec/accvm/translate"
)

var f = translate.From

// ErrFormat is the kind of every container format error.
var ErrFormat = errors.New(f("format"))

// formatError is a container format error.
type formatError string

func (err formatError) Error() string {
	return string(err)
}

func (err formatError) Is(target error) bool {
	return target == ErrFormat
}

var (
	ErrVersion = formatError(f("version mismatch"))
	ErrHeader  = formatError(f("header malformed"))
	ErrWidth   = formatError(f("word width not supported"))
	ErrBody    = formatError(f("body malformed"))
)
