// Package state implements save-state serialization for every
// stateful core component. A State is an append-only byte buffer with
// typed writers; Stater is implemented by every component that
// participates in a save state.
package state

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Stater is implemented by components whose state is captured and
// restored across save-states.
type Stater interface {
	Save(*State)
	Load(*State)
}

// State is a flat byte buffer read and written sequentially. Save
// walks components in a fixed order and appends to it; Load walks the
// same order and consumes from the front.
type State struct {
	raw  []byte
	read int
}

// New returns an empty State ready for writing.
func New() *State {
	return &State{raw: make([]byte, 0, 4096)}
}

// FromBytes wraps raw bytes (as previously produced by Bytes) in a
// State ready for reading.
func FromBytes(raw []byte) *State {
	return &State{raw: raw}
}

// Bytes returns the accumulated buffer.
func (s *State) Bytes() []byte { return s.raw }

func (s *State) Write8(v uint8) {
	s.raw = append(s.raw, v)
}

func (s *State) Write16(v uint16) {
	s.raw = append(s.raw, byte(v), byte(v>>8))
}

func (s *State) Write32(v uint32) {
	s.raw = append(s.raw, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (s *State) WriteBool(v bool) {
	if v {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

func (s *State) Read8() uint8 {
	v := s.raw[s.read]
	s.read++
	return v
}

func (s *State) Read16() uint16 {
	v := uint16(s.raw[s.read]) | uint16(s.raw[s.read+1])<<8
	s.read += 2
	return v
}

func (s *State) Read32() uint32 {
	v := uint32(s.raw[s.read]) | uint32(s.raw[s.read+1])<<8 |
		uint32(s.raw[s.read+2])<<16 | uint32(s.raw[s.read+3])<<24
	s.read += 4
	return v
}

func (s *State) ReadBool() bool {
	v := s.raw[s.read] != 0
	s.read++
	return v
}

// ReadData fills p from the buffer, advancing the read cursor by
// len(p).
func (s *State) ReadData(p []byte) {
	copy(p, s.raw[s.read:])
	s.read += len(p)
}

// Compress gzip-compresses the buffer. The host decides whether and
// where to persist the result; the core never touches a filesystem
// path itself.
func (s *State) Compress() ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(s.raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress and returns a State ready for reading.
func Decompress(compressed []byte) (*State, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &State{raw: raw}, nil
}
