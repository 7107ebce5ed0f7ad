package pkg

import "github.com/00imvj00/mqttrs/mqtt"

// The PingRequest type represents the header-only MQTT PINGREQ packet
type PingRequest int

// PingRequestSingleton is the one and only instance of the PingRequest type
const PingRequestSingleton = PingRequest(0)

// ID returns 0 since a PINGREQ packet has no packet identifier
func (PingRequest) ID() uint16 {
	return 0
}

// Type returns the TpPing packet type
func (PingRequest) Type() byte {
	return TpPing
}

// Equals returns true if this packet is equal to the given packet, false if not
func (PingRequest) Equals(p Packet) bool {
	return p == PingRequestSingleton
}

// String returns a brief string representation of the packet. Suitable for logging
func (PingRequest) String() string {
	return "PINGREQ"
}

// Write appends the MQTT bits of this packet to the given Writer
func (PingRequest) Write(w *mqtt.Writer) error {
	w.WriteU8(TpPing)
	w.WriteU8(0)
	return nil
}

// The PingResponse type represents the header-only MQTT PINGRESP packet
type PingResponse int

// PingResponseSingleton is the one and only instance of the PingResponse type
const PingResponseSingleton = PingResponse(0)

// ID returns 0 since a PINGRESP packet has no packet identifier
func (PingResponse) ID() uint16 {
	return 0
}

// Type returns the TpPingResp packet type
func (PingResponse) Type() byte {
	return TpPingResp
}

// Equals returns true if this packet is equal to the given packet, false if not
func (PingResponse) Equals(p Packet) bool {
	return p == PingResponseSingleton
}

// String returns a brief string representation of the packet. Suitable for logging
func (PingResponse) String() string {
	return "PINGRESP"
}

// Write appends the MQTT bits of this packet to the given Writer
func (PingResponse) Write(w *mqtt.Writer) error {
	w.WriteU8(TpPingResp)
	w.WriteU8(0)
	return nil
}
