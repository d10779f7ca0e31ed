package models

import (
	"fmt"
	"strings"
)

// Light is one addressable bulb/fixture known to the gateway. Instances are
// created and refreshed from all-light-status polls; the session keys them
// by Address.
type Light struct {
	ID              uint16
	Address         uint64
	Type            byte
	FirmwareVersion uint32
	Online          bool
	GroupID         uint16
	On              bool
	Luminance       uint8
	// colour temperature in Kelvin
	Temperature uint16
	Red         uint8
	Green       uint8
	Blue        uint8
	Alpha       uint8
	Name        string

	// trailing status-record bytes the protocol leaves undocumented
	Reserved [8]byte
}

// MACAddress renders the 64-bit address as eight dash-joined hex pairs,
// e.g. "01-23-45-67-89-ab-cd-ef".
func (l *Light) MACAddress() string {
	hex := fmt.Sprintf("%016x", l.Address)
	pairs := make([]string, 0, 8)
	for i := 0; i < len(hex); i += 2 {
		pairs = append(pairs, hex[i:i+2])
	}
	return strings.Join(pairs, "-")
}

func (l *Light) String() string {
	return fmt.Sprintf("<light: %s>", l.Name)
}

// ApplyOnOff records a confirmed on/off change. Turning on a light whose
// luminance is 0 snaps the luminance to 1, the gateway's observed default.
func (l *Light) ApplyOnOff(on bool) {
	l.On = on
	if on && l.Luminance == 0 {
		l.Luminance = 1
	}
}

// ApplyLuminance records a confirmed luminance change and keeps the on/off
// flag coupled: a non-zero level means the light is on, zero means off.
func (l *Light) ApplyLuminance(level uint8) {
	l.Luminance = level
	l.On = level > 0
}

// ApplyTemperature records a confirmed colour temperature change.
func (l *Light) ApplyTemperature(kelvin uint16) {
	l.Temperature = kelvin
}

// ApplyRGB records a confirmed colour change.
func (l *Light) ApplyRGB(r, g, b uint8) {
	l.Red = r
	l.Green = g
	l.Blue = b
}

// Group is a named collection of lights controlled together. Members holds
// light addresses, not Light pointers: the session's registry is the only
// owner of Light lifetime, and resolution happens at use time.
type Group struct {
	Index   uint16
	Name    string
	Members []uint64
}
