package pkg

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/tada/catch/pio"
	"github.com/tada/jsonstream"

	"github.com/00imvj00/mqttrs/mqtt"
)

// Pid is an MQTT packet identifier: a 16 bit integer in the range [1, 65535].
// The protocol forbids the value 0 ([MQTT-2.3.1-1]); the codec rejects it
// with ErrInvalidPid on both decode and encode.
type Pid uint16

// NewPid returns the first Pid of a fresh session, which is 1
func NewPid() Pid {
	return Pid(1)
}

// ParsePid converts a raw uint16 into a Pid. The value 0 yields ErrInvalidPid.
func ParsePid(v uint16) (Pid, error) {
	if v == 0 {
		return 0, ErrInvalidPid
	}
	return Pid(v), nil
}

// Next returns the Pid that follows this one. The sequence wraps from 65535
// back to 1, skipping 0.
func (p Pid) Next() Pid {
	if p == 0xffff {
		return Pid(1)
	}
	return p + 1
}

// Valid returns true unless the Pid is the forbidden value 0
func (p Pid) Valid() bool {
	return p != 0
}

// readPid reads a two byte packet identifier and rejects the value 0
func readPid(r *mqtt.Reader) (Pid, error) {
	v, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	return ParsePid(v)
}

// An IDManager hands out packet identifiers and guarantees their uniqueness
// among in-flight QoS 1 and QoS 2 exchanges by maintaining a set of
// identifiers that are in use
type IDManager interface {
	// NextFreePid allocates and returns the next free packet identifier
	NextFreePid() Pid

	// ReleasePid releases a previously allocated packet identifier
	ReleasePid(Pid)
}

type idManager struct {
	lock     sync.Mutex
	inFlight map[Pid]bool
	next     Pid
}

// NewIDManager creates an IDManager whose first allocated Pid is 1
func NewIDManager() IDManager {
	return &idManager{next: 0xffff, inFlight: make(map[Pid]bool, 37)}
}

func (m *idManager) NextFreePid() Pid {
	m.lock.Lock()
	m.next = m.next.Next()
	for m.inFlight[m.next] {
		m.next = m.next.Next()
	}
	m.inFlight[m.next] = true
	m.lock.Unlock()
	return m.next
}

func (m *idManager) ReleasePid(p Pid) {
	m.lock.Lock()
	delete(m.inFlight, p)
	m.lock.Unlock()
}

func (m *idManager) String() string {
	m.lock.Lock()
	n := len(m.inFlight)
	m.lock.Unlock()
	return fmt.Sprintf("idm(m%d, %d in flight)", uint16(m.next), n)
}

// MarshalToJSON streams the JSON encoded form of this instance onto the
// given io.Writer
func (m *idManager) MarshalToJSON(w io.Writer) {
	var (
		next Pid
		inf  []Pid
	)

	// snapshot under lock, stream outside of it
	m.lock.Lock()
	next = m.next
	inf = make([]Pid, 0, len(m.inFlight))
	for p := range m.inFlight {
		inf = append(inf, p)
	}
	m.lock.Unlock()

	pio.WriteString(w, `{"next":`)
	pio.WriteInt(w, int64(next))
	if len(inf) > 0 {
		pio.WriteString(w, `,"inFlight":[`)
		for i := range inf {
			if i > 0 {
				pio.WriteByte(w, ',')
			}
			pio.WriteInt(w, int64(inf[i]))
		}
		pio.WriteByte(w, ']')
	}
	pio.WriteByte(w, '}')
}

// UnmarshalFromJSON initializes this instance from the token stream provided
// by the given decoder. The first token has already been read and is passed
// as an argument.
func (m *idManager) UnmarshalFromJSON(js jsonstream.Decoder, t json.Token) {
	m.inFlight = make(map[Pid]bool, 37)
	jsonstream.AssertDelim(t, '{')
	for {
		k, ok := js.ReadStringOrEnd('}')
		if !ok {
			break
		}
		switch k {
		case "next":
			m.next = Pid(js.ReadInt())
		case "inFlight":
			js.ReadDelim('[')
			for {
				i, ok := js.ReadIntOrEnd(']')
				if !ok {
					break
				}
				m.inFlight[Pid(i)] = true
			}
		}
	}
}
