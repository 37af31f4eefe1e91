// Package packet implements the FCAP wire format: a fixed-MTU header
// followed by a sequence of Key-Type-Value (KTV) entries. It is the
// lowest-level piece of the protocol (component C1): the bit-packed
// layout, its invariants, and the safe accessors that traverse
// variable-width KTV entries.
package packet

// Packet is a single FCAP datagram: a 2-byte header followed by up to 31
// KTV entries, the whole thing bounded by MTU bytes. It is a fixed-size
// value; no heap allocation is needed to create, clear, or mutate one,
// matching the protocol's "no dynamic allocation on the hot path"
// requirement.
type Packet struct {
	buf [MTU]byte
}

// Init resets the packet to an empty request: version 0, zero keys, type
// Request, message ID 0. The KTV region is zeroed as well, so stale bytes
// from a previous use never leak into NumBytes/traversal.
func (p *Packet) Init() {
	for i := range p.buf {
		p.buf[i] = 0
	}
	encodeHeader(p.buf[:HeaderSize], Version, 0, Request, 0)
}

// Version returns the packet's protocol version.
func (p *Packet) Version() uint8 {
	return headerVersion(p.buf[:HeaderSize])
}

// NumKeys returns the number of KTV entries currently in the packet.
func (p *Packet) NumKeys() int {
	return int(headerNumKeys(p.buf[:HeaderSize]))
}

// Type returns whether this packet is a request or a response.
func (p *Packet) Type() PktType {
	return headerType(p.buf[:HeaderSize])
}

// SetType sets the request/response bit.
func (p *Packet) SetType(t PktType) {
	setHeaderType(p.buf[:HeaderSize], t)
}

// MessageID returns the packet's message correlation ID (0-127).
func (p *Packet) MessageID() uint8 {
	return headerMessageID(p.buf[:HeaderSize])
}

// SetMessageID sets the packet's message correlation ID.
func (p *Packet) SetMessageID(id uint8) {
	setHeaderMessageID(p.buf[:HeaderSize], id)
}

// ktvOffset walks the packet's own KTV entries (assumed well-formed, since
// they are populated only through AddKey or a Decode that has already
// validated them) and returns the byte
// offset, relative to the start of buf, of the (key_i)'th entry, or, if
// key_i == NumKeys(), the offset one past the last entry, i.e. where a new
// entry would be appended. It never trusts a caller-supplied offset; it
// always starts walking from HeaderSize.
func (p *Packet) ktvOffset(keyI int) int {
	offset := HeaderSize
	n := p.NumKeys()
	if keyI > n {
		keyI = n
	}
	for i := 0; i < keyI; i++ {
		_, typ := decodeKTVHeader(p.buf[offset])
		var length uint8
		if typ == Binary {
			length = p.buf[offset+ktvHeaderSize]
		}
		offset += ktvEntrySize(typ, length)
	}
	return offset
}

// indexOf returns the byte offset of key's ktv entry, or ok=false if key
// is not present.
func (p *Packet) indexOf(key Key) (offset int, ok bool) {
	offset = HeaderSize
	n := p.NumKeys()
	for i := 0; i < n; i++ {
		k, typ := decodeKTVHeader(p.buf[offset])
		var length uint8
		if typ == Binary {
			length = p.buf[offset+ktvHeaderSize]
		}
		if k == key {
			return offset, true
		}
		offset += ktvEntrySize(typ, length)
	}
	return 0, false
}

// NumBytes returns the exact on-wire length of the packet: the header plus
// the sum of every KTV entry's serialized size (I4).
func (p *Packet) NumBytes() int {
	return p.ktvOffset(p.NumKeys())
}

// HasKey reports whether key is present in the packet.
func (p *Packet) HasKey(key Key) bool {
	_, ok := p.indexOf(key)
	return ok
}

// AddKey appends a KTV entry. value must be exactly sizeof(typ) bytes for
// fixed-width types; for Binary, value is the payload and must fit in a
// single length byte (at most 255 bytes).
//
// AddKey returns ErrInvalid if key is already present (I2) or value has the
// wrong size for typ, and ErrNoMemory if the entry would not fit within the
// packet's remaining MTU budget (I3). On any error the packet is left
// unchanged.
func (p *Packet) AddKey(key Key, typ Type, value []byte) error {
	if _, exists := p.indexOf(key); exists {
		return ErrInvalid
	}

	if typ == Binary {
		if len(value) > 255 {
			return ErrInvalid
		}
	} else if len(value) != typ.Size() {
		return ErrInvalid
	}

	entrySize := ktvEntrySize(typ, uint8(len(value)))
	end := p.NumBytes()
	if end+entrySize > MTU {
		return ErrNoMemory
	}

	offset := end
	p.buf[offset] = encodeKTVHeader(key, typ)
	offset += ktvHeaderSize
	if typ == Binary {
		p.buf[offset] = uint8(len(value))
		offset += binaryLengthSize
	}
	copy(p.buf[offset:], value)

	setHeaderNumKeys(p.buf[:HeaderSize], uint8(p.NumKeys()+1))
	return nil
}

// GetKey looks up key and copies its stored value into out, mirroring the
// wire representation: for fixed-width types, out receives the raw value
// bytes; for Binary, out[0] receives the length and out[1:1+length]
// receives the payload. It returns the stored type on success.
//
// GetKey returns ErrNoKey if key is absent, and ErrNoMemory if out is too
// small to hold the value.
func (p *Packet) GetKey(key Key, out []byte) (Type, error) {
	offset, ok := p.indexOf(key)
	if !ok {
		return 0, ErrNoKey
	}

	_, typ := decodeKTVHeader(p.buf[offset])
	offset += ktvHeaderSize

	if typ == Binary {
		length := p.buf[offset]
		need := 1 + int(length)
		if len(out) < need {
			return 0, ErrNoMemory
		}
		out[0] = length
		copy(out[1:need], p.buf[offset+binaryLengthSize:offset+binaryLengthSize+int(length)])
		return typ, nil
	}

	size := typ.Size()
	if len(out) < size {
		return 0, ErrNoMemory
	}
	copy(out[:size], p.buf[offset:offset+size])
	return typ, nil
}

// Bytes returns the packet's on-wire representation: NumBytes() meaningful
// bytes, still backed by the packet's own storage. Callers must copy before
// the packet is reused (Init or another AddKey).
func (p *Packet) Bytes() []byte {
	return p.buf[:p.NumBytes()]
}

// Encode copies the packet's on-wire bytes into dst, returning the number
// of bytes written. It returns ErrNoMemory if dst is smaller than the
// packet's encoded length.
func (p *Packet) Encode(dst []byte) (int, error) {
	n := p.NumBytes()
	if len(dst) < n {
		return 0, ErrNoMemory
	}
	copy(dst, p.buf[:n])
	return n, nil
}

// Decode replaces the packet's contents with src, validating it along the
// way: version must be 0 (I5), the recomputed length must equal len(src)
// (I4), and keys must be unique (I2). Traversal never trusts anything but
// the bytes actually present in src; every step re-checks remaining
// length before advancing, so a truncated or adversarial src cannot cause
// an out-of-bounds read.
func (p *Packet) Decode(src []byte) error {
	if len(src) > MTU {
		return ErrInvalid
	}

	n, err := measure(src)
	if err != nil {
		return err
	}
	if n != len(src) {
		return ErrInvalid
	}

	for i := range p.buf {
		p.buf[i] = 0
	}
	copy(p.buf[:], src)
	return nil
}

// measure walks an untrusted byte slice as if it were an encoded packet and
// returns its total on-wire length, failing if the header claims a version
// other than 0, a key repeats, or any KTV entry runs past the end of src.
func measure(src []byte) (int, error) {
	if len(src) < HeaderSize {
		return 0, ErrInvalid
	}
	if headerVersion(src) != Version {
		return 0, ErrInvalid
	}

	numKeys := int(headerNumKeys(src))
	offset := HeaderSize
	var seen uint32 // one bit per key; NumKeys == 32 fits exactly

	for i := 0; i < numKeys; i++ {
		if offset >= len(src) {
			return 0, ErrInvalid
		}
		key, typ := decodeKTVHeader(src[offset])
		bit := uint32(1) << uint(key)
		if seen&bit != 0 {
			return 0, ErrInvalid
		}
		seen |= bit
		offset += ktvHeaderSize

		if typ == Binary {
			if offset >= len(src) {
				return 0, ErrInvalid
			}
			length := int(src[offset])
			offset += binaryLengthSize
			if offset+length > len(src) {
				return 0, ErrInvalid
			}
			offset += length
		} else {
			size := typ.Size()
			if offset+size > len(src) {
				return 0, ErrInvalid
			}
			offset += size
		}
	}

	return offset, nil
}
