package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/tada/catch/pio"
	"github.com/tada/jsonstream"

	"github.com/00imvj00/mqttrs/mqtt"
)

// Topic is an MQTT topic subscription with a filter and a desired quality of
// service. The codec checks that the filter is non-empty and free of NUL;
// wildcard placement is left to the session layer (see mqtt.ValidFilter).
type Topic struct {
	// Name is the topic filter
	Name string

	// QoS is the requested quality of service
	QoS QoS
}

// Subscribe is the MQTT SUBSCRIBE packet. Its fixed header flags are the
// fixed pattern 0b0010.
type Subscribe struct {
	pid    Pid
	topics []Topic
}

// NewSubscribe creates a new MQTT SUBSCRIBE packet
func NewSubscribe(pid Pid, topics ...Topic) *Subscribe {
	return &Subscribe{pid: pid, topics: topics}
}

// ParseSubscribe parses the SUBSCRIBE packet body from the given reader.
func ParseSubscribe(r *mqtt.Reader, b byte, pkLen int) (*Subscribe, error) {
	if b&0xf != fixedSubscribeFlags {
		return nil, ErrInvalidHeader
	}

	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	s := &Subscribe{}
	if s.pid, err = readPid(r); err != nil {
		return nil, err
	}

	for r.Len() > 0 {
		t := Topic{}
		if t.Name, err = r.ReadString(); err != nil {
			return nil, err
		}
		if !mqtt.ValidTopic(t.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, t.Name)
		}
		var q byte
		if q, err = r.ReadByte(); err != nil {
			return nil, err
		}
		if t.QoS, err = ParseQoS(q); err != nil {
			return nil, err
		}
		s.topics = append(s.topics, t)
	}
	if len(s.topics) == 0 {
		return nil, ErrInvalidSubscribe
	}
	return s, nil
}

// ID returns the packet identifier
func (s *Subscribe) ID() uint16 {
	return uint16(s.pid)
}

// Type returns the TpSubscribe packet type
func (s *Subscribe) Type() byte {
	return TpSubscribe
}

// Equals returns true if this packet is equal to the given packet, false if not
func (s *Subscribe) Equals(p Packet) bool {
	os, ok := p.(*Subscribe)
	if !ok || s.pid != os.pid || len(s.topics) != len(os.topics) {
		return false
	}
	for i := range s.topics {
		if s.topics[i] != os.topics[i] {
			return false
		}
	}
	return true
}

// Topics returns the list of topics to subscribe to
func (s *Subscribe) Topics() []Topic {
	return s.topics
}

// Write appends the MQTT bits of this packet to the given Writer
func (s *Subscribe) Write(w *mqtt.Writer) error {
	if len(s.topics) == 0 {
		return ErrInvalidSubscribe
	}
	if !s.pid.Valid() {
		return ErrInvalidPid
	}
	pkLen := 2 // packet id
	for i := range s.topics {
		t := &s.topics[i]
		if !mqtt.ValidTopic(t.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidTopic, t.Name)
		}
		if err := checkLen(t.Name); err != nil {
			return err
		}
		pkLen += 3 + len(t.Name)
	}
	if pkLen > mqtt.MaxVarInt {
		return ErrPayloadTooLong
	}

	w.WriteU8(TpSubscribe | fixedSubscribeFlags)
	w.WriteVarInt(pkLen)
	w.WriteU16(uint16(s.pid))
	for i := range s.topics {
		t := &s.topics[i]
		w.WriteString(t.Name)
		w.WriteU8(byte(t.QoS))
	}
	return nil
}

// String returns a brief string representation of the packet. Suitable for logging
func (s *Subscribe) String() string {
	bs := bytes.NewBufferString("SUBSCRIBE (m")
	bs.WriteString(strconv.Itoa(int(s.pid)))
	bs.WriteString(", ")
	wt := func(t Topic) {
		bs.WriteByte('q')
		bs.WriteString(strconv.Itoa(int(t.QoS)))
		bs.WriteString(", '")
		bs.WriteString(t.Name)
		bs.WriteByte('\'')
	}
	if len(s.topics) != 1 {
		bs.WriteByte('[')
		for i, t := range s.topics {
			if i > 0 {
				bs.WriteString(", ")
			}
			bs.WriteByte('(')
			wt(t)
			bs.WriteByte(')')
		}
		bs.WriteByte(']')
	} else {
		wt(s.topics[0])
	}
	bs.WriteByte(')')
	return bs.String()
}

// MarshalToJSON streams the JSON encoded form of this instance onto the
// given io.Writer, preserving the packet identifier and the requested
// subscriptions. Each topic is written as a filter string followed by its
// requested QoS.
func (s *Subscribe) MarshalToJSON(w io.Writer) {
	pio.WriteString(w, `{"id":`)
	pio.WriteInt(w, int64(s.pid))
	pio.WriteString(w, `,"topics":[`)
	for i := range s.topics {
		if i > 0 {
			pio.WriteByte(w, ',')
		}
		t := &s.topics[i]
		jsonstream.WriteString(w, t.Name)
		pio.WriteByte(w, ',')
		pio.WriteInt(w, int64(t.QoS))
	}
	pio.WriteString(w, `]}`)
}

// UnmarshalFromJSON initializes this instance from the token stream provided
// by the given decoder. The first token has already been read and is passed
// as an argument.
func (s *Subscribe) UnmarshalFromJSON(js jsonstream.Decoder, t json.Token) {
	jsonstream.AssertDelim(t, '{')
	for {
		k, ok := js.ReadStringOrEnd('}')
		if !ok {
			break
		}
		switch k {
		case "id":
			s.pid = Pid(js.ReadInt())
		case "topics":
			js.ReadDelim('[')
			for {
				name, ok := js.ReadStringOrEnd(']')
				if !ok {
					break
				}
				s.topics = append(s.topics, Topic{Name: name, QoS: QoS(js.ReadInt())})
			}
		}
	}
}

// SubscribeReturnCode is one byte of the SUBACK payload: the granted QoS for
// the topic filter at the same index of the SUBSCRIBE packet, or
// SubscribeFailure.
type SubscribeReturnCode byte

// SubscribeFailure tells the client that the subscription at the same index
// was refused
const SubscribeFailure = SubscribeReturnCode(0x80)

// SubscribeSuccess creates the return code granting the given QoS
func SubscribeSuccess(q QoS) SubscribeReturnCode {
	return SubscribeReturnCode(q)
}

// ParseSubscribeReturnCode converts a raw byte into a SubscribeReturnCode.
// Bytes outside the set {0, 1, 2, 0x80} yield ErrInvalidQoS.
func ParseSubscribeReturnCode(b byte) (SubscribeReturnCode, error) {
	if b > 2 && b != byte(SubscribeFailure) {
		return 0, fmt.Errorf("%w: SUBACK return code %d", ErrInvalidQoS, b)
	}
	return SubscribeReturnCode(b), nil
}

// QoS returns the granted QoS and true, or 0 and false for SubscribeFailure
func (c SubscribeReturnCode) QoS() (QoS, bool) {
	if c == SubscribeFailure {
		return 0, false
	}
	return QoS(c), true
}

// SubAck is the MQTT SUBACK packet
type SubAck struct {
	pid         Pid
	returnCodes []SubscribeReturnCode
}

// NewSubAck creates a new MQTT SUBACK packet
func NewSubAck(pid Pid, returnCodes ...SubscribeReturnCode) *SubAck {
	return &SubAck{pid: pid, returnCodes: returnCodes}
}

// ParseSubAck parses the SUBACK packet body from the given reader.
func ParseSubAck(r *mqtt.Reader, _ byte, pkLen int) (*SubAck, error) {
	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}
	s := &SubAck{}
	if s.pid, err = readPid(r); err != nil {
		return nil, err
	}
	for r.Len() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		rc, err := ParseSubscribeReturnCode(b)
		if err != nil {
			return nil, err
		}
		s.returnCodes = append(s.returnCodes, rc)
	}
	return s, nil
}

// ID returns the packet identifier
func (s *SubAck) ID() uint16 {
	return uint16(s.pid)
}

// Type returns the TpSubAck packet type
func (s *SubAck) Type() byte {
	return TpSubAck
}

// Equals returns true if this packet is equal to the given packet, false if not
func (s *SubAck) Equals(p Packet) bool {
	os, ok := p.(*SubAck)
	if !ok || s.pid != os.pid || len(s.returnCodes) != len(os.returnCodes) {
		return false
	}
	for i := range s.returnCodes {
		if s.returnCodes[i] != os.returnCodes[i] {
			return false
		}
	}
	return true
}

// ReturnCodes returns one return code per topic filter of the answered
// SUBSCRIBE packet
func (s *SubAck) ReturnCodes() []SubscribeReturnCode {
	return s.returnCodes
}

// String returns a brief string representation of the packet. Suitable for logging
func (s *SubAck) String() string {
	bs := bytes.NewBufferString("SUBACK (m")
	bs.WriteString(strconv.Itoa(int(s.pid)))
	bs.WriteString(", ")
	if len(s.returnCodes) != 1 {
		bs.WriteByte('[')
		for i, c := range s.returnCodes {
			if i > 0 {
				bs.WriteString(", ")
			}
			bs.WriteString("rc")
			bs.WriteString(strconv.Itoa(int(c)))
		}
		bs.WriteByte(']')
	} else {
		bs.WriteString("rc")
		bs.WriteString(strconv.Itoa(int(s.returnCodes[0])))
	}
	bs.WriteByte(')')
	return bs.String()
}

// Write appends the MQTT bits of this packet to the given Writer
func (s *SubAck) Write(w *mqtt.Writer) error {
	if !s.pid.Valid() {
		return ErrInvalidPid
	}
	pkLen := 2 + len(s.returnCodes)
	if pkLen > mqtt.MaxVarInt {
		return ErrPayloadTooLong
	}
	w.WriteU8(TpSubAck)
	w.WriteVarInt(pkLen)
	w.WriteU16(uint16(s.pid))
	for _, c := range s.returnCodes {
		w.WriteU8(byte(c))
	}
	return nil
}
