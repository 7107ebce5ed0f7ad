package pkg

import (
	"fmt"

	"github.com/00imvj00/mqttrs/mqtt"
)

const (
	cleanSessionFlag = byte(0b00000010)
	willFlag         = byte(0b00000100)
	willQoSMask      = byte(0b00011000)
	willRetainFlag   = byte(0b00100000)
	passwordFlag     = byte(0b01000000)
	userNameFlag     = byte(0b10000000)
	reservedFlag     = byte(0b00000001)
)

// Protocol identifies the protocol name and level pair that is actually on
// the wire. Decoding an unrecognized pair is an error, not a variant.
type Protocol byte

const (
	// MQTT311 is standard MQTT 3.1.1: protocol name "MQTT", level 4
	MQTT311 = Protocol(4)

	// MQIsdp is pre-standardisation MQTT 3.1: protocol name "MQIsdp",
	// level 3. Handled exactly like MQTT 3.1.1.
	MQIsdp = Protocol(3)
)

// ParseProtocol reads a protocol name and level and maps the pair onto a
// Protocol. Unrecognized pairs yield ErrUnsupportedProtocol.
func ParseProtocol(r *mqtt.Reader) (Protocol, error) {
	name, err := r.ReadString()
	if err != nil {
		return 0, err
	}
	level, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case name == "MQTT" && level == 4:
		return MQTT311, nil
	case name == "MQIsdp" && level == 3:
		return MQIsdp, nil
	default:
		return 0, fmt.Errorf("%w: %q level %d", ErrUnsupportedProtocol, name, level)
	}
}

// Name returns the protocol name as it appears on the wire
func (p Protocol) Name() string {
	if p == MQIsdp {
		return "MQIsdp"
	}
	return "MQTT"
}

// Level returns the protocol level as it appears on the wire
func (p Protocol) Level() byte {
	return byte(p)
}

func (p Protocol) write(w *mqtt.Writer) {
	w.WriteString(p.Name())
	w.WriteU8(p.Level())
}

// Connect is the MQTT CONNECT packet
type Connect struct {
	proto        Protocol
	clientID     string
	will         *Will
	creds        *Credentials
	keepAlive    uint16
	cleanSession bool
}

// NewConnect creates a new MQTT CONNECT packet. The will and creds arguments
// may be nil.
func NewConnect(proto Protocol, clientID string, cleanSession bool, keepAlive uint16, will *Will, creds *Credentials) *Connect {
	return &Connect{
		proto:        proto,
		clientID:     clientID,
		will:         will,
		creds:        creds,
		keepAlive:    keepAlive,
		cleanSession: cleanSession,
	}
}

// ParseConnect parses the CONNECT packet body from the given reader.
func ParseConnect(r *mqtt.Reader, _ byte, pkLen int) (*Connect, error) {
	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	c := &Connect{}
	if c.proto, err = ParseProtocol(r); err != nil {
		return nil, err
	}

	var flags byte
	if flags, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if flags&reservedFlag != 0 {
		return nil, ErrInvalidConnectFlags
	}
	c.cleanSession = flags&cleanSessionFlag != 0

	if c.keepAlive, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	// Payload starts here

	if c.clientID, err = r.ReadString(); err != nil {
		return nil, err
	}

	if flags&willFlag != 0 {
		w := &Will{Retain: flags&willRetainFlag != 0}
		if w.QoS, err = ParseQoS((flags & willQoSMask) >> 3); err != nil {
			return nil, err
		}
		if w.Topic, err = r.ReadString(); err != nil {
			return nil, err
		}
		if !mqtt.ValidTopic(w.Topic) {
			return nil, fmt.Errorf("%w: will topic", ErrInvalidTopic)
		}
		if w.Message, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		c.will = w
	}

	if flags&(userNameFlag|passwordFlag) != 0 {
		cr := &Credentials{}
		if flags&userNameFlag != 0 {
			if cr.User, err = r.ReadString(); err != nil {
				return nil, err
			}
		}
		if flags&passwordFlag != 0 {
			if cr.Password, err = r.ReadBytes(); err != nil {
				return nil, err
			}
		}
		c.creds = cr
	}

	if r.Len() > 0 {
		return nil, ErrInvalidLength
	}
	return c, nil
}

// ID returns 0 since a CONNECT packet has no packet identifier
func (c *Connect) ID() uint16 {
	return 0
}

// Type returns the TpConnect packet type
func (c *Connect) Type() byte {
	return TpConnect
}

// Equals returns true if this packet is equal to the given packet, false if not
func (c *Connect) Equals(p Packet) bool {
	oc, ok := p.(*Connect)
	return ok &&
		c.proto == oc.proto &&
		c.keepAlive == oc.keepAlive &&
		c.cleanSession == oc.cleanSession &&
		c.clientID == oc.clientID &&
		c.will.Equals(oc.will) &&
		c.creds.Equals(oc.creds)
}

func (c *Connect) flags() byte {
	flags := byte(0)
	if c.cleanSession {
		flags |= cleanSessionFlag
	}
	if c.will != nil {
		flags |= willFlag | byte(c.will.QoS)<<3
		if c.will.Retain {
			flags |= willRetainFlag
		}
	}
	if c.creds != nil {
		if c.creds.User != "" {
			flags |= userNameFlag
		}
		if c.creds.Password != nil {
			flags |= passwordFlag
		}
	}
	return flags
}

// Write appends the MQTT bits of this packet to the given Writer
func (c *Connect) Write(w *mqtt.Writer) error {
	if err := checkLen(c.clientID); err != nil {
		return err
	}
	pkLen := 2 + len(c.proto.Name()) +
		1 + // protocol level
		1 + // connect flags
		2 + // keep alive
		2 + len(c.clientID)

	if c.will != nil {
		if !mqtt.ValidTopic(c.will.Topic) {
			return fmt.Errorf("%w: will topic", ErrInvalidTopic)
		}
		if err := checkLen(c.will.Topic, string(c.will.Message)); err != nil {
			return err
		}
		pkLen += 2 + len(c.will.Topic)
		pkLen += 2 + len(c.will.Message)
	}
	if c.creds != nil {
		if err := checkLen(c.creds.User, string(c.creds.Password)); err != nil {
			return err
		}
		if c.creds.User != "" {
			pkLen += 2 + len(c.creds.User)
		}
		if c.creds.Password != nil {
			pkLen += 2 + len(c.creds.Password)
		}
	}

	w.WriteU8(TpConnect)
	w.WriteVarInt(pkLen)
	c.proto.write(w)
	w.WriteU8(c.flags())
	w.WriteU16(c.keepAlive)
	w.WriteString(c.clientID)
	if c.will != nil {
		w.WriteString(c.will.Topic)
		w.WriteBytes(c.will.Message)
	}
	if c.creds != nil {
		if c.creds.User != "" {
			w.WriteString(c.creds.User)
		}
		if c.creds.Password != nil {
			w.WriteBytes(c.creds.Password)
		}
	}
	return nil
}

// CleanSession returns true if the client asked for a clean session
func (c *Connect) CleanSession() bool {
	return c.cleanSession
}

// ClientID returns the client identifier
func (c *Connect) ClientID() string {
	return c.clientID
}

// Credentials returns the optional user credentials or nil
func (c *Connect) Credentials() *Credentials {
	return c.creds
}

// KeepAlive returns the keep alive interval in seconds
func (c *Connect) KeepAlive() uint16 {
	return c.keepAlive
}

// Protocol returns the protocol name and level pair
func (c *Connect) Protocol() Protocol {
	return c.proto
}

// Will returns the optional last will or nil
func (c *Connect) Will() *Will {
	return c.will
}

// DeleteWill removes the last will from the packet
func (c *Connect) DeleteWill() {
	c.will = nil
}

// String returns a brief string representation of the packet. Suitable for logging
func (c *Connect) String() string {
	cs, u, p := 0, 0, 0
	if c.cleanSession {
		cs = 1
	}
	if c.creds != nil {
		if c.creds.User != "" {
			u = 1
		}
		if c.creds.Password != nil {
			p = 1
		}
	}
	if c.will != nil {
		return fmt.Sprintf("CONNECT (c%d, k%d, u%d, p%d, %s)", cs, c.keepAlive, u, p, c.will)
	}
	return fmt.Sprintf("CONNECT (c%d, k%d, u%d, p%d)", cs, c.keepAlive, u, p)
}

// ReturnCode is the success value of a CONNACK packet. All codes but
// RtAccepted are refusals and implement the error interface.
type ReturnCode byte

const (
	// RtAccepted Connection accepted
	RtAccepted = ReturnCode(iota)

	// RtUnacceptableProtocolVersion The server does not support the level of
	// the MQTT protocol requested by the client
	RtUnacceptableProtocolVersion

	// RtIdentifierRejected The client identifier is correct UTF-8 but not
	// allowed by the server
	RtIdentifierRejected

	// RtServerUnavailable The network connection has been made but the MQTT
	// service is unavailable
	RtServerUnavailable

	// RtBadUserNameOrPassword The data in the user name or password is malformed
	RtBadUserNameOrPassword

	// RtNotAuthorized The client is not authorized to connect
	RtNotAuthorized
)

// ParseReturnCode converts a raw byte into a ReturnCode. Bytes above 5 yield
// ErrInvalidReturnCode.
func ParseReturnCode(b byte) (ReturnCode, error) {
	if b > byte(RtNotAuthorized) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidReturnCode, b)
	}
	return ReturnCode(b), nil
}

func (r ReturnCode) Error() string {
	switch r {
	case RtAccepted:
		return "accepted"
	case RtUnacceptableProtocolVersion:
		return "unacceptable protocol version"
	case RtIdentifierRejected:
		return "identifier rejected"
	case RtServerUnavailable:
		return "server unavailable"
	case RtBadUserNameOrPassword:
		return "bad user name or password"
	case RtNotAuthorized:
		return "not authorized"
	default:
		return "unknown error"
	}
}

// ConnAck is the MQTT CONNACK packet
type ConnAck struct {
	sessionPresent bool
	code           ReturnCode
}

// NewConnAck creates a new MQTT CONNACK packet
func NewConnAck(sessionPresent bool, code ReturnCode) *ConnAck {
	return &ConnAck{sessionPresent: sessionPresent, code: code}
}

// ParseConnAck parses the CONNACK packet body from the given reader.
func ParseConnAck(r *mqtt.Reader, _ byte, pkLen int) (*ConnAck, error) {
	if pkLen != 2 {
		return nil, ErrInvalidLength
	}
	flags, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if flags&^0x01 != 0 {
		return nil, ErrInvalidConnAckFlags
	}
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	code, err := ParseReturnCode(b)
	if err != nil {
		return nil, err
	}
	return &ConnAck{sessionPresent: flags&0x01 != 0, code: code}, nil
}

// ID returns 0 since a CONNACK packet has no packet identifier
func (a *ConnAck) ID() uint16 {
	return 0
}

// Type returns the TpConnAck packet type
func (a *ConnAck) Type() byte {
	return TpConnAck
}

// Equals returns true if this packet is equal to the given packet, false if not
func (a *ConnAck) Equals(p Packet) bool {
	oa, ok := p.(*ConnAck)
	return ok && *a == *oa
}

// SessionPresent returns true if the server has retained session state for
// the client
func (a *ConnAck) SessionPresent() bool {
	return a.sessionPresent
}

// ReturnCode returns the connect return code
func (a *ConnAck) ReturnCode() ReturnCode {
	return a.code
}

// String returns a brief string representation of the packet. Suitable for logging
func (a *ConnAck) String() string {
	s := 0
	if a.sessionPresent {
		s = 1
	}
	return fmt.Sprintf("CONNACK (s%d, rt%d)", s, byte(a.code))
}

// Write appends the MQTT bits of this packet to the given Writer
func (a *ConnAck) Write(w *mqtt.Writer) error {
	w.WriteU8(TpConnAck)
	w.WriteU8(2)
	flags := byte(0)
	if a.sessionPresent {
		flags |= 0x01
	}
	w.WriteU8(flags)
	w.WriteU8(byte(a.code))
	return nil
}

// Disconnect is the header-only MQTT DISCONNECT packet
type Disconnect int

// DisconnectSingleton is the one and only instance of the Disconnect type
const DisconnectSingleton = Disconnect(0)

// ID returns 0 since a DISCONNECT packet has no packet identifier
func (Disconnect) ID() uint16 {
	return 0
}

// Type returns the TpDisconnect packet type
func (Disconnect) Type() byte {
	return TpDisconnect
}

// Equals returns true if this packet is equal to the given packet, false if not
func (Disconnect) Equals(p Packet) bool {
	return p == DisconnectSingleton
}

// String returns a brief string representation of the packet. Suitable for logging
func (Disconnect) String() string {
	return "DISCONNECT"
}

// Write appends the MQTT bits of this packet to the given Writer
func (Disconnect) Write(w *mqtt.Writer) error {
	w.WriteU8(TpDisconnect)
	w.WriteU8(0)
	return nil
}
