package field

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Binary layout: uint32 magic, uint32 side, then side³ little-endian
// float64 cell values.
const magic = 0x43455046 // "CEPF"

// Write dumps the field in raw binary form, suitable for external
// visualization tooling.
func (f *Field) Write(w io.Writer) error {
	hdr := [2]uint32{magic, uint32(f.side)}
	if err := binary.Write(w, binary.LittleEndian, hdr[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, f.data)
}

// Read parses a field previously written with Write.
func Read(r io.Reader) (*Field, error) {
	var hdr [2]uint32
	if err := binary.Read(r, binary.LittleEndian, hdr[:]); err != nil {
		return nil, err
	}
	if hdr[0] != magic {
		return nil, fmt.Errorf("field: bad magic %#x", hdr[0])
	}
	side := int(hdr[1])
	if side <= 0 || side > 1<<12 {
		return nil, fmt.Errorf("field: implausible side %d", side)
	}

	f := New(side)
	if err := binary.Read(r, binary.LittleEndian, f.data); err != nil {
		return nil, err
	}
	return f, nil
}
