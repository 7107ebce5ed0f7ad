package mqtt

import "bytes"

// MaxVarInt is the largest value that can be represented by the MQTT
// variable length integer encoding (four bytes with seven data bits each).
const MaxVarInt = 0x0FFFFFFF

// Writer accumulates the wire representation of MQTT packets. It grows as
// needed and never fails; size constraints are checked by the packet layer
// before anything is written.
type Writer struct {
	bytes.Buffer
}

// NewWriter creates an empty Writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteU8 appends one byte
func (w *Writer) WriteU8(i uint8) {
	_ = w.WriteByte(i)
}

// WriteU16 appends an unsigned 16 bit integer in big endian byte order
func (w *Writer) WriteU16(i uint16) {
	w.WriteU8(byte(i >> 8))
	w.WriteU8(byte(i))
}

// WriteString appends a big endian uint16 length followed by the bytes of
// the given string
func (w *Writer) WriteString(s string) {
	w.WriteU16(uint16(len(s)))
	_, _ = w.Buffer.WriteString(s)
}

// WriteBytes appends a big endian uint16 length followed by the given bytes
func (w *Writer) WriteBytes(bs []byte) {
	w.WriteU16(uint16(len(bs)))
	_, _ = w.Write(bs)
}

// WriteVarInt appends the MQTT variable length encoding of the given value,
// least significant group of seven bits first. The value must not exceed
// MaxVarInt.
func (w *Writer) WriteVarInt(value int) {
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value > 0 {
			b |= 0x80
		}
		w.WriteU8(b)
		if value == 0 {
			return
		}
	}
}

// VarIntSize returns the number of bytes that WriteVarInt will use to
// represent the given value
func VarIntSize(value int) int {
	switch {
	case value < 0x80:
		return 1
	case value < 0x4000:
		return 2
	case value < 0x200000:
		return 3
	default:
		return 4
	}
}
