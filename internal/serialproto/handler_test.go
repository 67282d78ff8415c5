package serialproto

import (
	"bytes"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

// port feeds queued input and writes at most chunk bytes per call.
type port struct {
	in    [][]byte
	out   bytes.Buffer
	chunk int
	stuck bool
}

func (p *port) Read(b []byte) (int, error) {
	if len(p.in) == 0 {
		return 0, errors.New("would block")
	}
	n := copy(b, p.in[0])
	p.in = p.in[1:]
	return n, nil
}

func (p *port) Write(b []byte) (int, error) {
	if p.stuck {
		return 0, nil
	}
	if p.chunk > 0 && len(b) > p.chunk {
		b = b[:p.chunk]
	}
	return p.out.Write(b)
}

func TestHandleQuery(t *testing.T) {
	p := &port{in: [][]byte{[]byte("?")}}
	h := NewHandler(p)
	_, _, set := h.Handle(7, 5)
	assert.Assert(t, !set)
	assert.Equal(t, p.out.String(), "07:05\n")
}

func TestHandleSetWithShortWrites(t *testing.T) {
	p := &port{in: [][]byte{[]byte("13:37")}, chunk: 1}
	h := NewHandler(p)
	hours, minutes, set := h.Handle(0, 0)
	assert.Assert(t, set)
	assert.Equal(t, hours, uint8(13))
	assert.Equal(t, minutes, uint8(37))
	assert.Equal(t, p.out.String(), "13:37\n")
}

func TestHandleNothingToRead(t *testing.T) {
	p := &port{}
	h := NewHandler(p)
	_, _, set := h.Handle(1, 2)
	assert.Assert(t, !set)
	assert.Equal(t, p.out.Len(), 0)
}

func TestHandleRejectedSetIsSilent(t *testing.T) {
	p := &port{in: [][]byte{[]byte("25:00")}}
	h := NewHandler(p)
	_, _, set := h.Handle(1, 2)
	assert.Assert(t, !set)
	assert.Equal(t, p.out.Len(), 0)
}

func TestPrintGivesUpOnStuckPort(t *testing.T) {
	p := &port{stuck: true}
	h := NewHandler(p)
	assert.Assert(t, !h.Print([]byte("hello")))
}
