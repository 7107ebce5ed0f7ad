package pkg

import (
	"bytes"
	"fmt"
)

// Will is the optional last will in the MQTT CONNECT packet: the message the
// server publishes on the will topic when the client connection dies.
type Will struct {
	Topic   string
	Message []byte
	QoS     QoS
	Retain  bool
}

// Equals returns true if this instance is equal to the given instance, false if not
func (w *Will) Equals(ow *Will) bool {
	if w == nil || ow == nil {
		return w == ow
	}
	return w.Retain == ow.Retain && w.QoS == ow.QoS && w.Topic == ow.Topic && bytes.Equal(w.Message, ow.Message)
}

// String returns a brief string representation of the will. Suitable for logging
func (w *Will) String() string {
	r := 0
	if w.Retain {
		r = 1
	}
	return fmt.Sprintf("w(r%d, q%d, '%s', ... (%d bytes))", r, byte(w.QoS), w.Topic, len(w.Message))
}
