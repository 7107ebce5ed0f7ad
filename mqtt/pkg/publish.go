package pkg

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tada/catch"
	"github.com/tada/catch/pio"
	"github.com/tada/jsonstream"

	"github.com/00imvj00/mqttrs/mqtt"
)

const (
	// PublishRetain is the bit representing the MQTT PUBLISH "retain" flag
	PublishRetain = 0x01

	// PublishQoS is the mask for the MQTT PUBLISH "quality of service" bits
	PublishQoS = 0x06

	// PublishDup is the bit representing the MQTT PUBLISH "dup" flag
	PublishDup = 0x08
)

// The Publish type represents the MQTT PUBLISH packet. The packet identifier
// lives inside the QosPid and is therefore present exactly when the QoS is
// not AtMostOnce.
type Publish struct {
	topic   string
	payload []byte
	qosPid  QosPid
	dup     bool
	retain  bool
}

// SimplePublish creates a QoS 0 Publish packet with all flags zero
func SimplePublish(topic string, payload []byte) *Publish {
	return &Publish{topic: topic, payload: payload}
}

// NewPublish creates a new Publish packet
func NewPublish(qosPid QosPid, topic string, payload []byte, dup, retain bool) *Publish {
	return &Publish{topic: topic, payload: payload, qosPid: qosPid, dup: dup, retain: retain}
}

// ParsePublish parses the PUBLISH packet body from the given reader. The
// dup, QoS, and retain bits come from the fixed header byte b, not from the
// body.
func ParsePublish(r *mqtt.Reader, b byte, pkLen int) (*Publish, error) {
	qos, err := ParseQoS((b & PublishQoS) >> 1)
	if err != nil {
		return nil, err
	}
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	p := &Publish{dup: b&PublishDup != 0, retain: b&PublishRetain != 0}
	if p.topic, err = r.ReadString(); err != nil {
		return nil, err
	}
	if !mqtt.ValidName(p.topic) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, p.topic)
	}

	if qos != AtMostOnce {
		pid, err := readPid(r)
		if err != nil {
			return nil, err
		}
		if qos == AtLeastOnce {
			p.qosPid = QosAtLeastOnce(pid)
		} else {
			p.qosPid = QosExactlyOnce(pid)
		}
	}
	if p.payload, err = r.ReadRemainingBytes(); err != nil {
		return nil, err
	}
	return p, nil
}

// ID returns the packet identifier or 0 when the QoS is AtMostOnce
func (p *Publish) ID() uint16 {
	pid, _ := p.qosPid.Pid()
	return uint16(pid)
}

// Type returns the TpPublish packet type
func (p *Publish) Type() byte {
	return TpPublish
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p *Publish) Equals(other Packet) bool {
	op, ok := other.(*Publish)
	return ok &&
		p.qosPid == op.qosPid &&
		p.dup == op.dup &&
		p.retain == op.retain &&
		p.topic == op.topic &&
		bytes.Equal(p.payload, op.payload)
}

// QosPid returns the combined QoS and packet identifier
func (p *Publish) QosPid() QosPid {
	return p.qosPid
}

// QoSLevel returns the quality of service level, which is 0, 1 or 2
func (p *Publish) QoSLevel() QoS {
	return p.qosPid.QoS()
}

// IsDup returns true if the packet is a duplicate of a previously sent packet
func (p *Publish) IsDup() bool {
	return p.dup
}

// SetDup sets the dup flag of the packet
func (p *Publish) SetDup() {
	p.dup = true
}

// Retain returns the retain flag setting
func (p *Publish) Retain() bool {
	return p.retain
}

// ResetRetain resets the retain flag
func (p *Publish) ResetRetain() {
	p.retain = false
}

// TopicName returns the name of the topic
func (p *Publish) TopicName() string {
	return p.topic
}

// Payload returns the payload of the published message
func (p *Publish) Payload() []byte {
	return p.payload
}

// flags returns the low nibble of the fixed header byte
func (p *Publish) flags() byte {
	f := byte(p.qosPid.QoS()) << 1
	if p.dup {
		f |= PublishDup
	}
	if p.retain {
		f |= PublishRetain
	}
	return f
}

// Write appends the MQTT bits of this packet to the given Writer
func (p *Publish) Write(w *mqtt.Writer) error {
	if !mqtt.ValidName(p.topic) {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, p.topic)
	}
	if err := checkLen(p.topic); err != nil {
		return err
	}
	pkLen := 2 + len(p.topic) + len(p.payload)
	if pid, ok := p.qosPid.Pid(); ok {
		if !pid.Valid() {
			return ErrInvalidPid
		}
		pkLen += 2
	}
	if pkLen > mqtt.MaxVarInt {
		return ErrPayloadTooLong
	}

	w.WriteU8(TpPublish | p.flags())
	w.WriteVarInt(pkLen)
	w.WriteString(p.topic)
	if pid, ok := p.qosPid.Pid(); ok {
		w.WriteU16(uint16(pid))
	}
	_, _ = w.Write(p.payload)
	return nil
}

// String returns a brief string representation of the packet. Suitable for logging
func (p *Publish) String() string {
	// layout borrowed from mosquitto_sub log output
	d, r := 0, 0
	if p.dup {
		d = 1
	}
	if p.retain {
		r = 1
	}
	return fmt.Sprintf("PUBLISH (d%d, q%d, r%d, m%d, '%s', ... (%d bytes))",
		d, byte(p.qosPid.QoS()), r, p.ID(), p.topic, len(p.payload))
}

// IsPrintableASCII returns true if the given bytes are constrained to the
// ASCII 7-bit character set and have no control characters.
func IsPrintableASCII(bs []byte) bool {
	for i := range bs {
		c := bs[i]
		if c < 32 || c > 126 {
			return false
		}
	}
	return true
}

// MarshalToJSON streams the JSON encoded form of this instance onto the
// given io.Writer
func (p *Publish) MarshalToJSON(w io.Writer) {
	pio.WriteString(w, `{"flags":`)
	pio.WriteInt(w, int64(p.flags()))
	pio.WriteString(w, `,"id":`)
	pio.WriteInt(w, int64(p.ID()))
	pio.WriteString(w, `,"name":`)
	jsonstream.WriteString(w, p.topic)
	if len(p.payload) > 0 {
		if IsPrintableASCII(p.payload) {
			pio.WriteString(w, `,"payload":`)
			jsonstream.WriteString(w, string(p.payload))
		} else {
			pio.WriteString(w, `,"payloadEnc":`)
			jsonstream.WriteString(w, base64.StdEncoding.EncodeToString(p.payload))
		}
	}
	pio.WriteByte(w, '}')
}

// UnmarshalFromJSON initializes this instance from the token stream provided
// by the given decoder. The first token has already been read and is passed
// as an argument.
func (p *Publish) UnmarshalFromJSON(js jsonstream.Decoder, t json.Token) {
	jsonstream.AssertDelim(t, '{')
	var (
		flags byte
		id    uint16
	)
	for {
		k, ok := js.ReadStringOrEnd('}')
		if !ok {
			break
		}
		switch k {
		case "flags":
			flags = byte(js.ReadInt())
		case "id":
			id = uint16(js.ReadInt())
		case "name":
			p.topic = js.ReadString()
		case "payload":
			p.payload = []byte(js.ReadString())
		case "payloadEnc":
			bs, err := base64.StdEncoding.DecodeString(js.ReadString())
			if err != nil {
				panic(catch.Error(err))
			}
			p.payload = bs
		}
	}
	p.dup = flags&PublishDup != 0
	p.retain = flags&PublishRetain != 0
	switch QoS((flags & PublishQoS) >> 1) {
	case AtLeastOnce:
		p.qosPid = QosAtLeastOnce(Pid(id))
	case ExactlyOnce:
		p.qosPid = QosExactlyOnce(Pid(id))
	default:
		p.qosPid = QosAtMostOnce
	}
}

// The PubAck type represents the MQTT PUBACK packet
type PubAck Pid

// ParsePubAck parses the PUBACK packet body from the given reader.
func ParsePubAck(r *mqtt.Reader, _ byte, pkLen int) (PubAck, error) {
	if pkLen != 2 {
		return PubAck(0), ErrInvalidLength
	}
	pid, err := readPid(r)
	return PubAck(pid), err
}

// ID returns the packet identifier
func (p PubAck) ID() uint16 {
	return uint16(p)
}

// Type returns the TpPubAck packet type
func (p PubAck) Type() byte {
	return TpPubAck
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p PubAck) Equals(other Packet) bool {
	return p == other
}

// String returns a brief string representation of the packet. Suitable for logging
func (p PubAck) String() string {
	return fmt.Sprintf("PUBACK (m%d)", int(p))
}

// Write appends the MQTT bits of this packet to the given Writer
func (p PubAck) Write(w *mqtt.Writer) error {
	return writeAck(w, TpPubAck, Pid(p))
}

// The PubRec type represents the MQTT PUBREC packet
type PubRec Pid

// ParsePubRec parses the PUBREC packet body from the given reader.
func ParsePubRec(r *mqtt.Reader, _ byte, pkLen int) (PubRec, error) {
	if pkLen != 2 {
		return PubRec(0), ErrInvalidLength
	}
	pid, err := readPid(r)
	return PubRec(pid), err
}

// ID returns the packet identifier
func (p PubRec) ID() uint16 {
	return uint16(p)
}

// Type returns the TpPubRec packet type
func (p PubRec) Type() byte {
	return TpPubRec
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p PubRec) Equals(other Packet) bool {
	return p == other
}

// String returns a brief string representation of the packet. Suitable for logging
func (p PubRec) String() string {
	return fmt.Sprintf("PUBREC (m%d)", int(p))
}

// Write appends the MQTT bits of this packet to the given Writer
func (p PubRec) Write(w *mqtt.Writer) error {
	return writeAck(w, TpPubRec, Pid(p))
}

// The PubRel type represents the MQTT PUBREL packet. Its fixed header flags
// are the fixed pattern 0b0010.
type PubRel Pid

// ParsePubRel parses the PUBREL packet body from the given reader.
func ParsePubRel(r *mqtt.Reader, _ byte, pkLen int) (PubRel, error) {
	if pkLen != 2 {
		return PubRel(0), ErrInvalidLength
	}
	pid, err := readPid(r)
	return PubRel(pid), err
}

// ID returns the packet identifier
func (p PubRel) ID() uint16 {
	return uint16(p)
}

// Type returns the TpPubRel packet type
func (p PubRel) Type() byte {
	return TpPubRel
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p PubRel) Equals(other Packet) bool {
	return p == other
}

// String returns a brief string representation of the packet. Suitable for logging
func (p PubRel) String() string {
	return fmt.Sprintf("PUBREL (m%d)", int(p))
}

// Write appends the MQTT bits of this packet to the given Writer
func (p PubRel) Write(w *mqtt.Writer) error {
	return writeAck(w, TpPubRel|fixedPubRelFlags, Pid(p))
}

// The PubComp type represents the MQTT PUBCOMP packet
type PubComp Pid

// ParsePubComp parses the PUBCOMP packet body from the given reader.
func ParsePubComp(r *mqtt.Reader, _ byte, pkLen int) (PubComp, error) {
	if pkLen != 2 {
		return PubComp(0), ErrInvalidLength
	}
	pid, err := readPid(r)
	return PubComp(pid), err
}

// ID returns the packet identifier
func (p PubComp) ID() uint16 {
	return uint16(p)
}

// Type returns the TpPubComp packet type
func (p PubComp) Type() byte {
	return TpPubComp
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p PubComp) Equals(other Packet) bool {
	return p == other
}

// String returns a brief string representation of the packet. Suitable for logging
func (p PubComp) String() string {
	return fmt.Sprintf("PUBCOMP (m%d)", int(p))
}

// Write appends the MQTT bits of this packet to the given Writer
func (p PubComp) Write(w *mqtt.Writer) error {
	return writeAck(w, TpPubComp, Pid(p))
}

// writeAck writes the two byte body shared by PUBACK, PUBREC, PUBREL,
// PUBCOMP and UNSUBACK
func writeAck(w *mqtt.Writer, hd byte, pid Pid) error {
	if !pid.Valid() {
		return ErrInvalidPid
	}
	w.WriteU8(hd)
	w.WriteU8(2)
	w.WriteU16(uint16(pid))
	return nil
}
