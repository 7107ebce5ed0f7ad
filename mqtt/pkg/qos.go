package pkg

import "fmt"

// QoS is the delivery guarantee level of a PUBLISH packet
type QoS byte

const (
	// AtMostOnce delivery. No ack needed.
	AtMostOnce = QoS(0)

	// AtLeastOnce delivery. One ack needed.
	AtLeastOnce = QoS(1)

	// ExactlyOnce delivery. Two acks needed.
	ExactlyOnce = QoS(2)
)

// ParseQoS converts a raw byte into a QoS. The reserved bit pattern 3 yields
// ErrInvalidQoS.
func ParseQoS(b byte) (QoS, error) {
	if b > 2 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQoS, b)
	}
	return QoS(b), nil
}

// String returns a brief representation of the QoS level. Suitable for logging
func (q QoS) String() string {
	return fmt.Sprintf("q%d", byte(q))
}

// QosPid ties the QoS of a PUBLISH packet to its packet identifier. A
// QosPid carries an identifier if and only if the QoS is not AtMostOnce;
// the constructors make the illegal combinations impossible to build.
type QosPid struct {
	qos QoS
	pid Pid
}

// QosAtMostOnce is the QosPid of every QoS 0 publish; it carries no identifier
var QosAtMostOnce = QosPid{}

// QosAtLeastOnce creates the QosPid of a QoS 1 publish with the given identifier
func QosAtLeastOnce(pid Pid) QosPid {
	return QosPid{qos: AtLeastOnce, pid: pid}
}

// QosExactlyOnce creates the QosPid of a QoS 2 publish with the given identifier
func QosExactlyOnce(pid Pid) QosPid {
	return QosPid{qos: ExactlyOnce, pid: pid}
}

// QoS returns the quality of service level
func (qp QosPid) QoS() QoS {
	return qp.qos
}

// Pid returns the packet identifier and true when the QoS is AtLeastOnce or
// ExactlyOnce, and 0 and false otherwise.
func (qp QosPid) Pid() (Pid, bool) {
	return qp.pid, qp.qos != AtMostOnce
}

// String returns a brief representation of this QosPid. Suitable for logging
func (qp QosPid) String() string {
	if qp.qos == AtMostOnce {
		return "q0"
	}
	return fmt.Sprintf("q%d, m%d", byte(qp.qos), uint16(qp.pid))
}
