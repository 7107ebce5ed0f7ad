package pkg

import (
	"strings"
	"testing"

	"github.com/00imvj00/mqttrs/mqtt"
	"github.com/00imvj00/mqttrs/testutils"
)

func TestParseConnect(t *testing.T) {
	c1 := NewConnect(MQTT311, "cid", true, 5, &Will{
		Topic:   "my/will",
		Message: []byte("the will"),
		QoS:     1,
		Retain:  false,
	}, &Credentials{User: "bob", Password: []byte("password")})
	writeReadAndCompare(t, c1, "CONNECT (c1, k5, u1, p1, w(r0, q1, 'my/will', ... (8 bytes)))")
}

func TestParseConnect_minimal(t *testing.T) {
	writeReadAndCompare(t, NewConnect(MQTT311, "imvj", true, 120, nil, nil),
		"CONNECT (c1, k120, u0, p0)")
}

func TestConnect_mqIsdpWire(t *testing.T) {
	w := mqtt.NewWriter()
	testutils.CheckNotError(NewConnect(MQIsdp, "cid", true, 5, nil, nil).Write(w), t)
	testutils.CheckEqual([]byte{
		0x10, 17,
		0, 6, 'M', 'Q', 'I', 's', 'd', 'p', 3,
		0x02, 0, 5,
		0, 3, 'c', 'i', 'd',
	}, w.Bytes(), t)

	p, _, err := Decode(w.Bytes())
	testutils.CheckNotError(err, t)
	testutils.CheckEqual(MQIsdp, p.(*Connect).Protocol(), t)
}

func TestParseConnect_badProto(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("NONO")
	w.WriteU8(4)
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrUnsupportedProtocol, err, t)
}

func TestParseConnect_badLevel(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("MQTT")
	w.WriteU8(2)
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrUnsupportedProtocol, err, t)
}

func TestParseConnect_reservedFlag(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("MQTT")
	w.WriteU8(4)
	w.WriteU8(0x03) // reserved bit set
	w.WriteU16(5)
	w.WriteString("cid")
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrInvalidConnectFlags, err, t)
}

func TestParseConnect_badWillQoS(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("MQTT")
	w.WriteU8(4)
	w.WriteU8(willFlag | willQoSMask) // will qos 3
	w.WriteU16(5)
	w.WriteString("cid")
	w.WriteString("wtp")
	w.WriteBytes([]byte("msg"))
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrInvalidQoS, err, t)
}

func TestParseConnect_emptyWillTopic(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("MQTT")
	w.WriteU8(4)
	w.WriteU8(willFlag)
	w.WriteU16(5)
	w.WriteString("cid")
	w.WriteString("")
	w.WriteBytes([]byte("msg"))
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrInvalidTopic, err, t)
}

func TestParseConnect_trailingBytes(t *testing.T) {
	w := mqtt.NewWriter()
	w.WriteString("MQTT")
	w.WriteU8(4)
	w.WriteU8(0)
	w.WriteU16(5)
	w.WriteString("cid")
	w.WriteU8(0xff)
	_, err := ParseConnect(mqtt.NewReader(w.Bytes()), TpConnect, w.Len())
	testutils.CheckErrorIs(ErrInvalidLength, err, t)
}

func TestConnect_longClientID(t *testing.T) {
	w := mqtt.NewWriter()
	c := NewConnect(MQTT311, strings.Repeat("x", 0x10000), true, 5, nil, nil)
	testutils.CheckErrorIs(ErrStringTooLong, c.Write(w), t)
	testutils.CheckEqual(0, w.Len(), t)
}

func TestConnect_deleteWill(t *testing.T) {
	c := NewConnect(MQTT311, "cid", true, 5, &Will{Topic: "t", Message: []byte("m")}, nil)
	testutils.CheckNotNil(c.Will(), t)
	c.DeleteWill()
	if c.Will() != nil {
		t.Fatal("expected will to be gone")
	}
}

func TestParseConnAck(t *testing.T) {
	writeReadAndCompare(t, NewConnAck(false, 1), "CONNACK (s0, rt1)")
	writeReadAndCompare(t, NewConnAck(true, RtAccepted), "CONNACK (s1, rt0)")
}

func TestParseDisconnect(t *testing.T) {
	writeReadAndCompare(t, DisconnectSingleton, "DISCONNECT")
}

func TestReturnCode_Error(t *testing.T) {
	tests := []struct {
		name string
		code ReturnCode
		want string
	}{
		{
			name: "RtAccepted",
			code: RtAccepted,
			want: "accepted",
		},
		{
			name: "RtUnacceptableProtocolVersion",
			code: RtUnacceptableProtocolVersion,
			want: "unacceptable protocol version",
		},
		{
			name: "RtIdentifierRejected",
			code: RtIdentifierRejected,
			want: "identifier rejected",
		},
		{
			name: "RtServerUnavailable",
			code: RtServerUnavailable,
			want: "server unavailable",
		},
		{
			name: "RtBadUserNameOrPassword",
			code: RtBadUserNameOrPassword,
			want: "bad user name or password",
		},
		{
			name: "RtNotAuthorized",
			code: RtNotAuthorized,
			want: "not authorized",
		},
		{
			name: "Unknown",
			code: ReturnCode(99),
			want: "unknown error",
		},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.Error(); got != tt.want {
				t.Errorf("ReturnCode.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}
