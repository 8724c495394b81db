package sink

import (
	"crypto/sha1"
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// eventSourceNamespace is the namespace GUID 482C2DB2-C390-47C8-87F8-1A15BFC130FB
// in the byte order used for hashing.
var eventSourceNamespace = [...]byte{
	0x48, 0x2C, 0x2D, 0xB2, 0xC3, 0x90, 0x47, 0xC8,
	0x87, 0xF8, 0x1A, 0x15, 0xBF, 0xC1, 0x30, 0xFB,
}

// GUIDFromName derives the stable identifier of an event source from its name:
// SHA-1 over the namespace and the upper-cased name in UTF-16BE, version nibble 5.
// The result matches the identifiers other EventSource tooling computes for the
// same name, e.g. "TestName" -> 1cc2314e-2604-5195-deaa-9fd626af0e2d.
func GUIDFromName(name string) uuid.UUID {
	units := utf16.Encode([]rune(strings.ToUpper(name)))

	data := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(data[2*i:], u)
	}

	h := sha1.New()
	h.Write(eventSourceNamespace[:])
	h.Write(data)
	sum := h.Sum(nil)

	var g [16]byte
	copy(g[:], sum[:16])
	g[7] = (g[7] & 0x0F) | 0x50

	// g is laid out with little-endian leading fields; uuid.UUID is big-endian.
	var id uuid.UUID
	id[0], id[1], id[2], id[3] = g[3], g[2], g[1], g[0]
	id[4], id[5] = g[5], g[4]
	id[6], id[7] = g[7], g[6]
	copy(id[8:], g[8:])

	return id
}
