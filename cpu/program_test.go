package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"in 9",
		"out #42",
		"",
		"; comment",
		"halt",
	)

	table := [](struct {
		ip     int
		lineno int
		index  int
	}){
		{0, 1, 0},
		{1, 1, 1},
		{2, 2, 0},
		{3, 2, 1},
		{4, 5, 0},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.ip)
		if assert.NotNil(dbg.Opcode, "ip %d", entry.ip) {
			assert.Equal(entry.lineno, dbg.LineNo, "ip %d", entry.ip)
			assert.Equal(entry.index, dbg.Index, "ip %d", entry.ip)
		}
	}

	assert.Nil(prog.Debug(5).Opcode)
	assert.Nil(prog.Debug(-1).Opcode)
}

func TestProgramBinary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Codes: []int32{104, 7}},
			{LineNo: 2, Ip: 4, Codes: []int32{99}},
		},
	}

	// Gaps in the listing are zero filled.
	assert.Equal(Memory{104, 7, 0, 0, 99}, prog.Binary())
}

func TestProgramCodes(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"out #1",
		"out #2",
		"halt",
	)

	var ips []int
	var codes []int32
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		codes = append(codes, code)
		if len(ips) == 3 {
			break
		}
	}

	assert.Equal([]int{0, 1, 2}, ips)
	assert.Equal([]int32{104, 1, 104}, codes)
}
