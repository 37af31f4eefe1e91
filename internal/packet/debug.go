package packet

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable description of the packet to w: its header
// fields followed by one line per KTV entry. This is the Go equivalent of
// the reference implementation's fcap_debug_packet/fcap_debug_ktv, which
// were compiled in only under a debug build flag; here it is just an
// ordinary function, left for callers (typically the dispatcher's Debug
// log line) to invoke only when they want it. It never runs on the hot
// decode/encode path.
func (p *Packet) Dump(w io.Writer) {
	fmt.Fprintf(w, "Header:\n")
	fmt.Fprintf(w, "  Version: %d\n", p.Version())
	fmt.Fprintf(w, "  NumKeys: %d\n", p.NumKeys())
	fmt.Fprintf(w, "  MessageID: %d\n", p.MessageID())
	fmt.Fprintf(w, "  Type: %s\n", p.Type())

	offset := HeaderSize
	n := p.NumKeys()
	for i := 0; i < n; i++ {
		key, typ := decodeKTVHeader(p.buf[offset])
		fmt.Fprintf(w, "KTV[%d]\n", i)
		fmt.Fprintf(w, "  Key: %s\n", key)
		fmt.Fprintf(w, "  Type: %s\n", typ)

		valueOffset := offset + ktvHeaderSize
		var length uint8
		if typ == Binary {
			length = p.buf[valueOffset]
			valueOffset += binaryLengthSize
			fmt.Fprintf(w, "  Length: %d\n", length)
			fmt.Fprintf(w, "  Value (hex): % x\n", p.buf[valueOffset:valueOffset+int(length)])
		} else {
			fmt.Fprintf(w, "  Value (hex): % x\n", p.buf[valueOffset:valueOffset+typ.Size()])
		}

		offset += ktvEntrySize(typ, length)
	}
}

// String returns the same information as Dump, as a single string.
func (p *Packet) String() string {
	var b strings.Builder
	p.Dump(&b)
	return b.String()
}
