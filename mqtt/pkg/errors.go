package pkg

import "errors"

// The closed set of failures shared by Decode and the packet Write methods.
// A decode error means the byte framing of the stream can no longer be
// trusted; the caller must drop the connection rather than resynchronize.
var (
	// ErrInvalidHeader is an unrecognized packet type nibble, illegal fixed
	// header flag bits, or a remaining length encoding that exceeds four bytes.
	ErrInvalidHeader = errors.New("invalid fixed header")

	// ErrInvalidLength is a declared body or field length that is
	// inconsistent with the bytes actually present.
	ErrInvalidLength = errors.New("invalid remaining length")

	// ErrInvalidPid is a zero packet identifier where one is required.
	ErrInvalidPid = errors.New("packet identifier must be non-zero")

	// ErrInvalidQoS is the reserved QoS bit pattern 3, or a SUBACK return
	// code outside the set {0, 1, 2, 0x80}.
	ErrInvalidQoS = errors.New("invalid QoS")

	// ErrUnsupportedProtocol is a CONNECT protocol name and level pair that
	// the codec does not recognize.
	ErrUnsupportedProtocol = errors.New("unsupported protocol name or level")

	// ErrInvalidConnectFlags is a CONNECT flags byte with the reserved bit set.
	ErrInvalidConnectFlags = errors.New("invalid CONNECT flags")

	// ErrInvalidConnAckFlags is a CONNACK acknowledge flags byte with any
	// reserved bit set.
	ErrInvalidConnAckFlags = errors.New("invalid CONNACK flags")

	// ErrInvalidReturnCode is a CONNACK return code byte above 5.
	ErrInvalidReturnCode = errors.New("invalid CONNACK return code")

	// ErrInvalidSubscribe is a SUBSCRIBE or UNSUBSCRIBE packet without any
	// topic filter, which the protocol forbids.
	ErrInvalidSubscribe = errors.New("subscription packet without topics")

	// ErrInvalidTopic is an empty topic, a topic containing the NUL
	// character, or a PUBLISH topic name containing wildcards.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrPayloadTooLong means the encoded remaining length would exceed the
	// protocol maximum of 268435455 bytes.
	ErrPayloadTooLong = errors.New("payload too long")

	// ErrStringTooLong means a length prefixed field exceeds the 65535 byte
	// ceiling of its two byte length prefix.
	ErrStringTooLong = errors.New("string exceeds 65535 bytes")
)
