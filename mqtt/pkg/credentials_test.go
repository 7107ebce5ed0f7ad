package pkg

import (
	"testing"

	"github.com/tada/jsonstream"

	"github.com/00imvj00/mqttrs/testutils"
)

func TestCredentials_Equals(t *testing.T) {
	c := &Credentials{User: "bob", Password: []byte("secret")}
	testutils.CheckTrue(c.Equals(&Credentials{User: "bob", Password: []byte("secret")}), t)
	testutils.CheckFalse(c.Equals(&Credentials{User: "alice", Password: []byte("secret")}), t)
	testutils.CheckFalse(c.Equals(nil), t)
	var n *Credentials
	testutils.CheckTrue(n.Equals(nil), t)
}

func TestCredentials_json(t *testing.T) {
	c1 := &Credentials{User: "bob", Password: []byte{0, 1, 2, 3}}
	bs, err := jsonstream.Marshal(c1)
	testutils.CheckNotError(err, t)
	c2 := &Credentials{}
	testutils.CheckNotError(jsonstream.Unmarshal(c2, bs), t)
	testutils.CheckTrue(c1.Equals(c2), t)
}

func TestCredentials_json_userOnly(t *testing.T) {
	c1 := &Credentials{User: "bob"}
	bs, err := jsonstream.Marshal(c1)
	testutils.CheckNotError(err, t)
	c2 := &Credentials{}
	testutils.CheckNotError(jsonstream.Unmarshal(c2, bs), t)
	testutils.CheckTrue(c1.Equals(c2), t)
}

func TestCredentials_json_badPassword(t *testing.T) {
	c := &Credentials{}
	testutils.CheckError(jsonstream.Unmarshal(c, []byte(`{"p":"!not base64!"}`)), t)
}

func TestWill_Equals(t *testing.T) {
	w := &Will{Topic: "a/b", Message: []byte("m"), QoS: 1, Retain: true}
	testutils.CheckTrue(w.Equals(&Will{Topic: "a/b", Message: []byte("m"), QoS: 1, Retain: true}), t)
	testutils.CheckFalse(w.Equals(&Will{Topic: "a/c", Message: []byte("m"), QoS: 1, Retain: true}), t)
	testutils.CheckFalse(w.Equals(nil), t)
	var n *Will
	testutils.CheckTrue(n.Equals(nil), t)
}

func TestWill_String(t *testing.T) {
	w := &Will{Topic: "my/will", Message: []byte("the will"), QoS: 1}
	testutils.CheckEqual("w(r0, q1, 'my/will', ... (8 bytes))", w.String(), t)
}
