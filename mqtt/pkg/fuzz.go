//+build fuzz

package pkg

import (
	"github.com/00imvj00/mqttrs/mqtt"
)

func Fuzz(bs []byte) int {
	p, _, err := Decode(bs)
	if err != nil || p == nil {
		return 0
	}
	w := mqtt.NewWriter()
	if err = p.Write(w); err != nil {
		panic(err)
	}
	if q, _, err := Decode(w.Bytes()); err != nil || !p.Equals(q) {
		panic("reencoded packet differs")
	}
	return 1
}
