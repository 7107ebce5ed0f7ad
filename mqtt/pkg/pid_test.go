package pkg

import (
	"math"
	"testing"

	"github.com/tada/jsonstream"

	"github.com/00imvj00/mqttrs/testutils"
)

func TestParsePid_zero(t *testing.T) {
	_, err := ParsePid(0)
	testutils.CheckErrorIs(ErrInvalidPid, err, t)
	p, err := ParsePid(1)
	testutils.CheckNotError(err, t)
	testutils.CheckEqual(Pid(1), p, t)
}

// a full cycle through the identifier space must visit every value in
// [1, 65535] exactly once and never produce 0
func TestPid_NextCycle(t *testing.T) {
	p := NewPid()
	seen := make(map[Pid]bool, math.MaxUint16)
	for i := 0; i < math.MaxUint16; i++ {
		if !p.Valid() {
			t.Fatal("produced the forbidden identifier 0")
		}
		if seen[p] {
			t.Fatalf("produced %d twice", p)
		}
		seen[p] = true
		p = p.Next()
	}
	testutils.CheckEqual(NewPid(), p, t)
}

func TestIDManager_NextFreePid(t *testing.T) {
	idm := NewIDManager()
	testutils.CheckEqual(Pid(1), idm.NextFreePid(), t)
	testutils.CheckEqual(Pid(2), idm.NextFreePid(), t)
	testutils.CheckEqual(Pid(3), idm.NextFreePid(), t)
	idm.ReleasePid(2)
	testutils.CheckEqual(Pid(4), idm.NextFreePid(), t)
}

func TestIDManager_flip(t *testing.T) {
	idm := NewIDManager().(*idManager)
	idm.next = math.MaxUint16 - 1
	testutils.CheckEqual(Pid(math.MaxUint16), idm.NextFreePid(), t)
	testutils.CheckEqual(Pid(1), idm.NextFreePid(), t)
}

func TestIDManager_flipInFlight(t *testing.T) {
	idm := NewIDManager().(*idManager)
	idm.next = math.MaxUint16 - 2
	idm.inFlight[Pid(math.MaxUint16)] = true
	testutils.CheckEqual(Pid(math.MaxUint16-1), idm.NextFreePid(), t)
	testutils.CheckEqual(Pid(1), idm.NextFreePid(), t)
}

func TestIDManager_json(t *testing.T) {
	idm := NewIDManager().(*idManager)
	idm.next = math.MaxUint16 - 3
	idm.inFlight[Pid(math.MaxUint16-1)] = true
	idm.inFlight[Pid(math.MaxUint16)] = true
	idm.inFlight[Pid(1)] = true
	bs, err := jsonstream.Marshal(idm)
	testutils.CheckNotError(err, t)
	idm = &idManager{}
	testutils.CheckNotError(jsonstream.Unmarshal(idm, bs), t)
	testutils.CheckEqual(Pid(math.MaxUint16-2), idm.NextFreePid(), t)
	testutils.CheckEqual(Pid(2), idm.NextFreePid(), t)
}
