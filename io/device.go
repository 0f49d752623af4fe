// Package io provides the host devices for the accumulator machine.
// It includes the device interfaces used by the CPU's IN and OUT
// instructions, a line oriented numeric Tape over an io.Reader and
// io.Writer, and a Queue that dispatches output asynchronously while
// preserving its order.
package io

// Input supplies values to the IN instruction.
// Receive may block until a value is available.
type Input interface {
	// Receive returns the next input value.
	Receive() (value int64, err error)
}

// Output accepts values from the OUT instruction, in program order.
type Output interface {
	// Send delivers a single value to the device.
	Send(value int64) error
}

// InputFunc adapts a function to an Input.
type InputFunc func() (int64, error)

// Receive calls the function.
func (fn InputFunc) Receive() (int64, error) {
	return fn()
}

// OutputFunc adapts a function to an Output.
type OutputFunc func(value int64) error

// Send calls the function.
func (fn OutputFunc) Send(value int64) error {
	return fn(value)
}

// Values is an Input that supplies a fixed list of values.
type Values struct {
	Data []int64

	readIndex int
}

// Rewind restarts the list from the first value.
func (vs *Values) Rewind() {
	vs.readIndex = 0
}

// Receive returns the next value, or ErrInputEmpty.
func (vs *Values) Receive() (value int64, err error) {
	if vs.readIndex >= len(vs.Data) {
		err = ErrInputEmpty
		return
	}
	value = vs.Data[vs.readIndex]
	vs.readIndex++
	return
}

// Recorder is an Output that records every value sent.
type Recorder struct {
	Data []int64
}

// Send appends the value.
func (rec *Recorder) Send(value int64) error {
	rec.Data = append(rec.Data, value)
	return nil
}
