package io

import (
	"errors"

	"github.com/ezrec/accvm/translate"
)

var f = translate.From

var (
	// Device errors
	ErrInputEmpty  = errors.New(f("input empty"))
	ErrQueueClosed = errors.New(f("queue closed"))
)

// ErrParseInput reports a tape line that is not a number.
type ErrParseInput string

func (err ErrParseInput) Error() string {
	return f("input '%v' is not a number", string(err))
}
