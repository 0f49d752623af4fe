package cpu

import (
	"iter"
)

const (
	MEMORY_LIMIT = 1 << 20 // Number of addressable words.
)

// Memory is a word addressable arena. Unwritten addresses read as zero.
type Memory struct {
	width uint
	cells []uint64
}

// NewMemory creates an empty memory of the given word width.
func NewMemory(width uint) Memory {
	return Memory{width: width}
}

// Len returns one past the highest address written since the last reset.
func (mem *Memory) Len() uint64 {
	return uint64(len(mem.cells))
}

// Read returns the word at an address.
func (mem *Memory) Read(address uint64) uint64 {
	if address >= uint64(len(mem.cells)) {
		return 0
	}
	return mem.cells[address]
}

// Write stores the wrapped value at an address.
func (mem *Memory) Write(address uint64, value uint64) (err error) {
	if address >= MEMORY_LIMIT {
		err = ErrMemoryRange
		return
	}

	if address >= uint64(len(mem.cells)) {
		mem.cells = append(mem.cells, make([]uint64, int(address)+1-len(mem.cells))...)
	}
	mem.cells[address] = Wrap(value, mem.width)

	return
}

// Reset clears all memory.
func (mem *Memory) Reset() {
	mem.cells = mem.cells[:0]
}

// All iterates over the non-zero words, in address order.
func (mem *Memory) All() iter.Seq2[uint64, uint64] {
	return func(yield func(address uint64, value uint64) bool) {
		for n, value := range mem.cells {
			if value == 0 {
				continue
			}
			if !yield(uint64(n), value) {
				return
			}
		}
	}
}
