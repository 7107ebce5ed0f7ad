package pkg

import (
	"bytes"
	"errors"
	"io"

	"github.com/00imvj00/mqttrs/mqtt"
)

const (
	// fixedSubscribeFlags is the only legal flag nibble of the SUBSCRIBE and
	// UNSUBSCRIBE fixed header
	fixedSubscribeFlags = 0x02

	// fixedPubRelFlags is the only legal flag nibble of the PUBREL fixed header
	fixedPubRelFlags = 0x02
)

// Decode parses the first MQTT packet found in bs.
//
// While bs holds fewer bytes than the packet's fixed header declares, Decode
// returns (nil, 0, nil) and bs is left byte for byte intact so the caller
// can append more data and retry; a partial packet is the expected steady
// state of a streaming transport, not an error.
//
// On success the returned count is the exact number of bytes the packet
// occupied; the caller resumes at bs[n:]. On a non-nil error the byte
// framing of the stream can no longer be trusted and the caller must drop
// the connection.
func Decode(bs []byte) (Packet, int, error) {
	hd, pkLen, hLen, err := readHeader(bs)
	if err != nil || hLen == 0 {
		return nil, 0, err
	}

	var p Packet
	r := mqtt.NewReader(bs[hLen : hLen+pkLen])
	switch hd & TpMask {
	case TpConnect:
		p, err = ParseConnect(r, hd, pkLen)
	case TpConnAck:
		p, err = ParseConnAck(r, hd, pkLen)
	case TpPublish:
		p, err = ParsePublish(r, hd, pkLen)
	case TpPubAck:
		p, err = ParsePubAck(r, hd, pkLen)
	case TpPubRec:
		p, err = ParsePubRec(r, hd, pkLen)
	case TpPubRel:
		p, err = ParsePubRel(r, hd, pkLen)
	case TpPubComp:
		p, err = ParsePubComp(r, hd, pkLen)
	case TpSubscribe:
		p, err = ParseSubscribe(r, hd, pkLen)
	case TpSubAck:
		p, err = ParseSubAck(r, hd, pkLen)
	case TpUnsubscribe:
		p, err = ParseUnsubscribe(r, hd, pkLen)
	case TpUnsubAck:
		p, err = ParseUnsubAck(r, hd, pkLen)
	case TpPing:
		p, err = PingRequestSingleton, headerOnly(pkLen)
	case TpPingResp:
		p, err = PingResponseSingleton, headerOnly(pkLen)
	case TpDisconnect:
		p, err = DisconnectSingleton, headerOnly(pkLen)
	}
	if err != nil {
		// a short read inside a complete body means the declared field
		// lengths are inconsistent with the remaining length
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrInvalidLength
		}
		return nil, 0, err
	}
	return p, hLen + pkLen, nil
}

// DecodeBuffer parses the first MQTT packet in buf and consumes its bytes.
// It returns (nil, nil) without touching buf while buf does not yet hold a
// complete packet. After a non-nil error the buffer contents are
// unspecified; the caller must not try to resynchronize.
func DecodeBuffer(buf *bytes.Buffer) (Packet, error) {
	p, n, err := Decode(buf.Bytes())
	if p != nil {
		buf.Next(n)
	}
	return p, err
}

// PacketSize returns the total wire size, fixed header included, of the
// first packet in bs, or 0 while bs does not yet hold a complete packet.
// Transports use it to frame packets without decoding them.
func PacketSize(bs []byte) (int, error) {
	_, pkLen, hLen, err := readHeader(bs)
	if err != nil || hLen == 0 {
		return 0, err
	}
	return hLen + pkLen, nil
}

// Encode appends the full wire representation of the given packet to the
// given Writer. A non-nil error leaves the Writer's prior content intact.
func Encode(p Packet, w *mqtt.Writer) error {
	return p.Write(w)
}

// readHeader parses the fixed header. It returns hLen == 0 while bs holds
// fewer bytes than the full header plus its declared remaining length,
// without consuming anything. The header byte is validated only once the
// whole packet is present.
func readHeader(bs []byte) (hd byte, pkLen, hLen int, err error) {
	for pos := 0; pos < 4; pos++ {
		if len(bs) <= pos+1 {
			// ran out of bytes within a legal encoding
			return 0, 0, 0, nil
		}
		b := bs[pos+1]
		pkLen |= int(b&0x7f) << uint(pos*7)
		if b&0x80 != 0 {
			continue
		}
		if len(bs) < pos+2+pkLen {
			// won't be able to read the full packet yet
			return 0, 0, 0, nil
		}
		if err = validateHeader(bs[0]); err != nil {
			return 0, 0, 0, err
		}
		return bs[0], pkLen, pos + 2, nil
	}
	// continuation bit set on the fourth byte
	return 0, 0, 0, ErrInvalidHeader
}

// validateHeader checks the packet type nibble and the per-type fixed flag
// pattern of the first header byte.
func validateHeader(hd byte) error {
	switch hd & TpMask {
	case TpPublish:
		if _, err := ParseQoS((hd & PublishQoS) >> 1); err != nil {
			return err
		}
	case TpPubRel, TpSubscribe, TpUnsubscribe:
		if hd&0x0f != fixedSubscribeFlags {
			return ErrInvalidHeader
		}
	case TpConnect, TpConnAck, TpPubAck, TpPubRec, TpPubComp, TpSubAck,
		TpUnsubAck, TpPing, TpPingResp, TpDisconnect:
		if hd&0x0f != 0 {
			return ErrInvalidHeader
		}
	default:
		// type nibble 0 and 15 are reserved
		return ErrInvalidHeader
	}
	return nil
}

// headerOnly rejects a non-empty body on PINGREQ, PINGRESP and DISCONNECT
func headerOnly(pkLen int) error {
	if pkLen != 0 {
		return ErrInvalidLength
	}
	return nil
}

// checkLen guards the two byte length prefix of the given fields
func checkLen(ss ...string) error {
	for _, s := range ss {
		if len(s) > 0xffff {
			return ErrStringTooLong
		}
	}
	return nil
}
