package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides line oriented numeric I/O.
// It wraps an io.Reader for input and io.Writer for output, converting
// between one number per line and the values of the IN and OUT instructions.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Prompt string // If set, written to Output before each input is read.

	scanner *bufio.Scanner
	reader  io.Reader
}

// Rewind drops any buffered input.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.reader = nil
}

// Receive reads the next non-blank line of input as a number.
// Numbers may be decimal, or 0x, 0o, 0b prefixed.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = ErrInputEmpty
		return
	}

	if tc.scanner == nil || tc.reader != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.reader = tc.Input
	}

	if len(tc.Prompt) != 0 && tc.Output != nil {
		_, err = io.WriteString(tc.Output, tc.Prompt)
		if err != nil {
			return
		}
	}

	for tc.scanner.Scan() {
		text := strings.TrimSpace(tc.scanner.Text())
		if len(text) == 0 {
			continue
		}
		value, err = strconv.ParseInt(text, 0, 64)
		if err != nil {
			err = ErrParseInput(text)
		}
		return
	}

	err = tc.scanner.Err()
	if err == nil {
		err = ErrInputEmpty
	}

	return
}

// Send writes the value as a decimal line.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		return
	}
	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
