package packet

import (
	"encoding/binary"
	"math"
)

// Fixed-width values are stored "in host byte order" per §3: the reference
// C implementation simply memcpy's the native representation of the value
// in, with no endian normalization. This implementation targets
// little-endian hosts (the overwhelming majority of FCAP's embedded
// targets, and the byte order the reference implementation's x86/ARM test
// rigs use), so the typed accessors below encode/decode explicitly as
// little-endian rather than relying on unsafe host-layout tricks.
var byteOrder = binary.LittleEndian

// AddU8 adds a fixed-width U8 entry.
func (p *Packet) AddU8(key Key, v uint8) error {
	return p.AddKey(key, U8, []byte{v})
}

// AddU16 adds a fixed-width U16 entry.
func (p *Packet) AddU16(key Key, v uint16) error {
	var b [2]byte
	byteOrder.PutUint16(b[:], v)
	return p.AddKey(key, U16, b[:])
}

// AddI16 adds a fixed-width I16 entry.
func (p *Packet) AddI16(key Key, v int16) error {
	var b [2]byte
	byteOrder.PutUint16(b[:], uint16(v))
	return p.AddKey(key, I16, b[:])
}

// AddI32 adds a fixed-width I32 entry.
func (p *Packet) AddI32(key Key, v int32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], uint32(v))
	return p.AddKey(key, I32, b[:])
}

// AddI64 adds a fixed-width I64 entry.
func (p *Packet) AddI64(key Key, v int64) error {
	var b [8]byte
	byteOrder.PutUint64(b[:], uint64(v))
	return p.AddKey(key, I64, b[:])
}

// AddF32 adds a fixed-width F32 entry.
func (p *Packet) AddF32(key Key, v float32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], math.Float32bits(v))
	return p.AddKey(key, F32, b[:])
}

// AddF64 adds a fixed-width F64 entry.
func (p *Packet) AddF64(key Key, v float64) error {
	var b [8]byte
	byteOrder.PutUint64(b[:], math.Float64bits(v))
	return p.AddKey(key, F64, b[:])
}

// AddBinary adds a variable-length Binary entry. value must be at most 255
// bytes.
func (p *Packet) AddBinary(key Key, value []byte) error {
	return p.AddKey(key, Binary, value)
}

// GetU8 reads a U8 entry, returning ErrWrongType if key holds a different
// type.
func (p *Packet) GetU8(key Key) (uint8, error) {
	var b [1]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != U8 {
		return 0, ErrWrongType
	}
	return b[0], nil
}

// GetU16 reads a U16 entry, returning ErrWrongType if key holds a different
// type.
func (p *Packet) GetU16(key Key) (uint16, error) {
	var b [2]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != U16 {
		return 0, ErrWrongType
	}
	return byteOrder.Uint16(b[:]), nil
}

// GetI16 reads an I16 entry, returning ErrWrongType if key holds a
// different type.
func (p *Packet) GetI16(key Key) (int16, error) {
	var b [2]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != I16 {
		return 0, ErrWrongType
	}
	return int16(byteOrder.Uint16(b[:])), nil
}

// GetI32 reads an I32 entry, returning ErrWrongType if key holds a
// different type.
func (p *Packet) GetI32(key Key) (int32, error) {
	var b [4]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != I32 {
		return 0, ErrWrongType
	}
	return int32(byteOrder.Uint32(b[:])), nil
}

// GetI64 reads an I64 entry, returning ErrWrongType if key holds a
// different type.
func (p *Packet) GetI64(key Key) (int64, error) {
	var b [8]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != I64 {
		return 0, ErrWrongType
	}
	return int64(byteOrder.Uint64(b[:])), nil
}

// GetF32 reads an F32 entry, returning ErrWrongType if key holds a
// different type.
func (p *Packet) GetF32(key Key) (float32, error) {
	var b [4]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != F32 {
		return 0, ErrWrongType
	}
	return math.Float32frombits(byteOrder.Uint32(b[:])), nil
}

// GetF64 reads an F64 entry, returning ErrWrongType if key holds a
// different type.
func (p *Packet) GetF64(key Key) (float64, error) {
	var b [8]byte
	typ, err := p.GetKey(key, b[:])
	if err != nil {
		return 0, err
	}
	if typ != F64 {
		return 0, ErrWrongType
	}
	return math.Float64frombits(byteOrder.Uint64(b[:])), nil
}

// GetBinary reads a Binary entry into a freshly allocated slice. This is a
// convenience wrapper around GetKey's length-prefixed output format; it is
// not used on the hot path (which should call GetKey with a caller-owned
// buffer instead).
func (p *Packet) GetBinary(key Key) ([]byte, error) {
	var hdr [1]byte
	offset, ok := p.indexOf(key)
	if !ok {
		return nil, ErrNoKey
	}
	_, typ := decodeKTVHeader(p.buf[offset])
	if typ != Binary {
		return nil, ErrWrongType
	}
	length := p.buf[offset+ktvHeaderSize]
	hdr[0] = length
	out := make([]byte, 1+int(length))
	if _, err := p.GetKey(key, out); err != nil {
		return nil, err
	}
	return out[1:], nil
}
