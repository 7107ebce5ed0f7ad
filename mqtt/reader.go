package mqtt

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrVarIntTooLarge is returned when a variable length integer has the
// continuation bit set on its fourth byte. The encoding is bounded at four
// bytes so this is malformed data, not a short read.
var ErrVarIntTooLarge = errors.New("malformed variable length int")

// Reader consumes the wire representation of MQTT packets from an in-memory
// byte slice. A short read yields io.ErrUnexpectedEOF; within a body bounded
// by the fixed header's remaining length that always means the declared
// lengths are inconsistent.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a Reader that consumes the given bytes
func NewReader(bs []byte) *Reader {
	return &Reader{buf: bs}
}

// Len returns the number of bytes that remain to be read
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// ReadByte returns the next byte
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 returns the next big endian unsigned 16 bit integer
func (r *Reader) ReadUint16() (uint16, error) {
	bs, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bs), nil
}

// ReadString reads a big endian uint16 length followed by that many bytes
// and returns them as a string
func (r *Reader) ReadString() (string, error) {
	bs, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// ReadBytes reads a big endian uint16 length followed by that many bytes.
// The returned slice aliases the Reader's underlying buffer.
func (r *Reader) ReadBytes() ([]byte, error) {
	l, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return r.ReadExact(int(l))
}

// ReadExact returns the next n bytes or io.ErrUnexpectedEOF if fewer remain
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, io.ErrUnexpectedEOF
	}
	bs := r.buf[r.pos : r.pos+n]
	r.pos += n
	return bs, nil
}

// ReadRemainingBytes returns everything up to the end of the buffer
func (r *Reader) ReadRemainingBytes() ([]byte, error) {
	return r.ReadExact(r.Len())
}

// ReadVarInt returns the next variable length unsigned integer. It returns
// io.ErrUnexpectedEOF when the buffer ends before a byte without the
// continuation bit and ErrVarIntTooLarge when the encoding exceeds four
// bytes. The packet framer scans the fixed header without consuming and so
// does its own byte-wise decoding; this reader form is for callers that
// frame packets themselves.
func (r *Reader) ReadVarInt() (int, error) {
	v := 0
	for shift := uint(0); ; shift += 7 {
		if shift > 21 {
			return 0, ErrVarIntTooLarge
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= int(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// ReadPacket returns a Reader bounded to exactly the next pkLen bytes. The
// receiver advances past those bytes.
func (r *Reader) ReadPacket(pkLen int) (*Reader, error) {
	bs, err := r.ReadExact(pkLen)
	if err != nil {
		return nil, err
	}
	return NewReader(bs), nil
}
