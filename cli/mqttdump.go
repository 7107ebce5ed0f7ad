// Package cli implements the mqttdump command: it reads a stored MQTT 3.1.1
// byte stream and prints one line per packet.
package cli

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/00imvj00/mqttrs/logger"
	"github.com/00imvj00/mqttrs/mqtt/pkg"
)

// Dump parses the command line, reads the packet stream from the named file
// or from stdin and prints the decoded packets. The exit code is 0 on
// success, 1 when the stream is malformed or truncated and 2 on usage
// errors.
func Dump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.SetOutput(stderr)

	var (
		printHelp bool
		hexInput  bool
		debug     bool
	)
	fs.BoolVar(&printHelp, "h", false, "")
	fs.BoolVar(&printHelp, "help", false, "Print this help")
	fs.BoolVar(&hexInput, "x", false, "Treat the input as hex text instead of raw bytes")
	fs.BoolVar(&debug, "D", false, "Enable debug logging")

	_ = fs.Parse(args[1:])
	if printHelp {
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	level := logger.Info
	if debug {
		level = logger.Debug
	}
	lg := logger.New(level, stdout, stderr)

	in := os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			lg.Error(err)
			return 2
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	bs, err := ioutil.ReadAll(in)
	if err != nil {
		lg.Error(err)
		return 1
	}
	if hexInput {
		if bs, err = decodeHexText(bs); err != nil {
			lg.Error(err)
			return 1
		}
	}
	return dumpStream(bs, lg)
}

func dumpStream(bs []byte, lg logger.Logger) int {
	offset := 0
	for len(bs) > 0 {
		p, n, err := pkg.Decode(bs)
		if err != nil {
			lg.Error(fmt.Sprintf("offset %d: %s", offset, err))
			return 1
		}
		if p == nil {
			lg.Error(fmt.Sprintf("offset %d: truncated packet, %d bytes left", offset, len(bs)))
			return 1
		}
		if lg.DebugEnabled() {
			lg.Debug(fmt.Sprintf("offset %d, %d bytes", offset, n))
		}
		lg.Info(p)
		bs = bs[n:]
		offset += n
	}
	return 0
}

// decodeHexText converts hex text into bytes, ignoring whitespace so that
// both "c000" and "c0 00" forms work
func decodeHexText(bs []byte) ([]byte, error) {
	s := strings.Join(strings.Fields(string(bs)), "")
	return hex.DecodeString(s)
}
