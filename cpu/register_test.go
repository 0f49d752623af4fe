package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	reg := NewRegister(8)
	assert.Equal(uint(8), reg.Width())

	reg.Set(255)
	reg.Add(1)
	assert.Equal(uint64(0), reg.Uint())

	reg.Add(-1)
	assert.Equal(uint64(255), reg.Uint())
	assert.Equal(int64(-1), reg.Int())

	reg.Set(0x1234)
	assert.Equal(uint64(0x34), reg.Uint())

	reg.SetInt(-15)
	assert.Equal(uint64(0xf1), reg.Uint())
	assert.Equal(int64(-15), reg.Int())
	assert.Equal("0xf1 (-15)", reg.String())

	wide := NewRegister(16)
	wide.SetInt(-2)
	assert.Equal("0xfffe (-2)", wide.String())
}

func TestLookupRegister(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"ACC", "CIR", "IX", "MAR", "MDR", "PC"} {
		id, ok := LookupRegister(name)
		assert.True(ok, name)
		assert.Equal(name, id.String())
		assert.True(id.Valid())
	}

	id, ok := LookupRegister("acc")
	assert.False(ok)
	assert.Equal(REG_ACC, id)

	_, ok = LookupRegister("")
	assert.False(ok)

	assert.False(RegisterId(6).Valid())
	assert.False(RegisterId(-1).Valid())
}
