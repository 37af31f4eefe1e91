package packet

// Key identifies a single KTV entry within a packet. The wire format
// allocates 5 bits to a key, so at most 32 distinct keys can exist.
type Key uint8

// The reference key space: A-Z followed by AA-AF, 32 values in total.
const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyAA
	KeyAB
	KeyAC
	KeyAD
	KeyAE
	KeyAF

	// NumKeys is the size of the closed key enumeration.
	NumKeys = KeyAF + 1
)

var keyNames = [NumKeys]string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"AA", "AB", "AC", "AD", "AE", "AF",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "KEY?"
}

// Valid reports whether k falls within the closed key enumeration.
func (k Key) Valid() bool {
	return k < NumKeys
}
