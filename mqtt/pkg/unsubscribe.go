package pkg

import (
	"bytes"
	"fmt"

	"github.com/00imvj00/mqttrs/mqtt"
)

// Unsubscribe is the MQTT UNSUBSCRIBE packet. Its fixed header flags are the
// fixed pattern 0b0010.
type Unsubscribe struct {
	pid    Pid
	topics []string
}

// NewUnsubscribe creates a new MQTT UNSUBSCRIBE packet
func NewUnsubscribe(pid Pid, topics ...string) *Unsubscribe {
	return &Unsubscribe{pid: pid, topics: topics}
}

// ParseUnsubscribe parses the UNSUBSCRIBE packet body from the given reader.
func ParseUnsubscribe(r *mqtt.Reader, b byte, pkLen int) (*Unsubscribe, error) {
	if b&0xf != fixedSubscribeFlags {
		return nil, ErrInvalidHeader
	}

	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	u := &Unsubscribe{}
	if u.pid, err = readPid(r); err != nil {
		return nil, err
	}

	for r.Len() > 0 {
		var name string
		if name, err = r.ReadString(); err != nil {
			return nil, err
		}
		if !mqtt.ValidTopic(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, name)
		}
		u.topics = append(u.topics, name)
	}
	if len(u.topics) == 0 {
		return nil, ErrInvalidSubscribe
	}
	return u, nil
}

// ID returns the packet identifier
func (u *Unsubscribe) ID() uint16 {
	return uint16(u.pid)
}

// Type returns the TpUnsubscribe packet type
func (u *Unsubscribe) Type() byte {
	return TpUnsubscribe
}

// Equals returns true if this packet is equal to the given packet, false if not
func (u *Unsubscribe) Equals(p Packet) bool {
	ou, ok := p.(*Unsubscribe)
	if !ok || u.pid != ou.pid || len(u.topics) != len(ou.topics) {
		return false
	}
	for i := range u.topics {
		if u.topics[i] != ou.topics[i] {
			return false
		}
	}
	return true
}

// Topics returns the list of topic filters to unsubscribe from
func (u *Unsubscribe) Topics() []string {
	return u.topics
}

// Write appends the MQTT bits of this packet to the given Writer
func (u *Unsubscribe) Write(w *mqtt.Writer) error {
	if len(u.topics) == 0 {
		return ErrInvalidSubscribe
	}
	if !u.pid.Valid() {
		return ErrInvalidPid
	}
	pkLen := 2 // packet id
	for i := range u.topics {
		if !mqtt.ValidTopic(u.topics[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidTopic, u.topics[i])
		}
		if err := checkLen(u.topics[i]); err != nil {
			return err
		}
		pkLen += 2 + len(u.topics[i])
	}
	if pkLen > mqtt.MaxVarInt {
		return ErrPayloadTooLong
	}

	w.WriteU8(TpUnsubscribe | fixedSubscribeFlags)
	w.WriteVarInt(pkLen)
	w.WriteU16(uint16(u.pid))
	for i := range u.topics {
		w.WriteString(u.topics[i])
	}
	return nil
}

// String returns a brief string representation of the packet. Suitable for logging
func (u *Unsubscribe) String() string {
	bs := bytes.NewBufferString("UNSUBSCRIBE (m")
	bs.WriteString(fmt.Sprintf("%d", int(u.pid)))
	bs.WriteString(", [")
	for i, t := range u.topics {
		if i > 0 {
			bs.WriteString(", ")
		}
		bs.WriteByte('\'')
		bs.WriteString(t)
		bs.WriteByte('\'')
	}
	bs.WriteString("])")
	return bs.String()
}

// UnsubAck is the MQTT UNSUBACK packet
type UnsubAck Pid

// ParseUnsubAck parses the UNSUBACK packet body from the given reader.
func ParseUnsubAck(r *mqtt.Reader, _ byte, pkLen int) (UnsubAck, error) {
	if pkLen != 2 {
		return UnsubAck(0), ErrInvalidLength
	}
	pid, err := readPid(r)
	return UnsubAck(pid), err
}

// ID returns the packet identifier
func (u UnsubAck) ID() uint16 {
	return uint16(u)
}

// Type returns the TpUnsubAck packet type
func (u UnsubAck) Type() byte {
	return TpUnsubAck
}

// Equals returns true if this packet is equal to the given packet, false if not
func (u UnsubAck) Equals(other Packet) bool {
	return u == other
}

// String returns a brief string representation of the packet. Suitable for logging
func (u UnsubAck) String() string {
	return fmt.Sprintf("UNSUBACK (m%d)", int(u))
}

// Write appends the MQTT bits of this packet to the given Writer
func (u UnsubAck) Write(w *mqtt.Writer) error {
	return writeAck(w, TpUnsubAck, Pid(u))
}
