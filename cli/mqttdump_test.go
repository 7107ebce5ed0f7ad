package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/00imvj00/mqttrs/logger"
)

func TestDumpStream(t *testing.T) {
	o := bytes.Buffer{}
	e := bytes.Buffer{}
	lg := logger.New(logger.Info, &o, &e)
	rc := dumpStream([]byte{0xc0, 0, 0xd0, 0, 0xe0, 0}, lg)
	if rc != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", rc, e.String())
	}
	out := o.String()
	for _, want := range []string{"PINGREQ", "PINGRESP", "DISCONNECT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q misses %s", out, want)
		}
	}
}

func TestDumpStream_truncated(t *testing.T) {
	o := bytes.Buffer{}
	e := bytes.Buffer{}
	lg := logger.New(logger.Info, &o, &e)
	if rc := dumpStream([]byte{0xc0, 0, 0x30, 10, 0}, lg); rc != 1 {
		t.Fatalf("expected exit code 1, got %d", rc)
	}
	if !strings.Contains(e.String(), "truncated") {
		t.Errorf("unexpected error output %q", e.String())
	}
}

func TestDumpStream_malformed(t *testing.T) {
	o := bytes.Buffer{}
	e := bytes.Buffer{}
	lg := logger.New(logger.Info, &o, &e)
	if rc := dumpStream([]byte{0x00, 0x00}, lg); rc != 1 {
		t.Fatalf("expected exit code 1, got %d", rc)
	}
	if !strings.Contains(e.String(), "offset 0") {
		t.Errorf("unexpected error output %q", e.String())
	}
}

func TestDecodeHexText(t *testing.T) {
	bs, err := decodeHexText([]byte("c0 00\nd0 00"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal([]byte{0xc0, 0, 0xd0, 0}, bs) {
		t.Fatalf("unexpected bytes %v", bs)
	}
	if _, err = decodeHexText([]byte("zz")); err == nil {
		t.Fatal("expected error")
	}
}
