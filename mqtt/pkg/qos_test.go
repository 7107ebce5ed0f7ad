package pkg

import (
	"testing"

	"github.com/00imvj00/mqttrs/testutils"
)

func TestParseQoS(t *testing.T) {
	for b := byte(0); b <= 2; b++ {
		q, err := ParseQoS(b)
		testutils.CheckNotError(err, t)
		testutils.CheckEqual(QoS(b), q, t)
	}
	_, err := ParseQoS(3)
	testutils.CheckErrorIs(ErrInvalidQoS, err, t)
}

func TestQosPid(t *testing.T) {
	testutils.CheckEqual(AtMostOnce, QosAtMostOnce.QoS(), t)
	if _, ok := QosAtMostOnce.Pid(); ok {
		t.Fatal("QoS 0 must not carry a packet identifier")
	}

	qp := QosAtLeastOnce(23)
	testutils.CheckEqual(AtLeastOnce, qp.QoS(), t)
	pid, ok := qp.Pid()
	testutils.CheckTrue(ok, t)
	testutils.CheckEqual(Pid(23), pid, t)

	qp = QosExactlyOnce(42)
	testutils.CheckEqual(ExactlyOnce, qp.QoS(), t)
	pid, ok = qp.Pid()
	testutils.CheckTrue(ok, t)
	testutils.CheckEqual(Pid(42), pid, t)
}

func TestQosPid_String(t *testing.T) {
	testutils.CheckEqual("q0", QosAtMostOnce.String(), t)
	testutils.CheckEqual("q1, m23", QosAtLeastOnce(23).String(), t)
	testutils.CheckEqual("q2, m42", QosExactlyOnce(42).String(), t)
}
