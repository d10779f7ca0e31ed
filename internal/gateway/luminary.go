package gateway

import (
	"lightify/internal/models"
	"lightify/internal/protocol"
)

// Luminary is anything independently controllable for power, brightness,
// temperature, and colour: a single light or a whole group. Every mutator
// performs one synchronous round trip; the acknowledgement frame is
// discarded. Local state is updated only after the round trip succeeds, so
// the cached model always reflects commands the gateway has accepted.
type Luminary interface {
	Name() string
	SetOnOff(on bool) error
	SetLuminance(level uint8, transition uint16) error
	SetTemperature(kelvin uint16, transition uint16) error
	SetRGB(r, g, b uint8, transition uint16) error
}

// LightLuminary returns the command surface for one light. On top of the
// shared round-trip behaviour it keeps the light's cached state in step,
// including the luminance/on-off coupling.
func (s *Session) LightLuminary(light *models.Light) Luminary {
	return &lightLuminary{
		luminary: luminary{
			session: s,
			target:  protocol.LightTarget(light.Address),
			name:    light.Name,
		},
		light: light,
	}
}

// GroupLuminary returns the command surface for a group. Groups carry no
// cached channel state, so there is nothing to update locally.
func (s *Session) GroupLuminary(group *models.Group) Luminary {
	return &luminary{
		session: s,
		target:  protocol.GroupTarget(group.Index),
		name:    group.Name,
	}
}

// luminary is the shared base: build the frame for the target, send it,
// wait out the acknowledgement.
type luminary struct {
	session *Session
	target  protocol.Target
	name    string
}

func (l *luminary) Name() string {
	return l.name
}

func (l *luminary) SetOnOff(on bool) error {
	return l.session.command(protocol.EncodeOnOff(l.target, l.session.nextSeq(), on))
}

func (l *luminary) SetLuminance(level uint8, transition uint16) error {
	return l.session.command(protocol.EncodeLuminance(l.target, l.session.nextSeq(), level, transition))
}

func (l *luminary) SetTemperature(kelvin uint16, transition uint16) error {
	return l.session.command(protocol.EncodeTemperature(l.target, l.session.nextSeq(), kelvin, transition))
}

func (l *luminary) SetRGB(r, g, b uint8, transition uint16) error {
	return l.session.command(protocol.EncodeColour(l.target, l.session.nextSeq(), r, g, b, transition))
}

// lightLuminary decorates the base with the light's local state updates,
// applied only once the gateway has acknowledged the command.
type lightLuminary struct {
	luminary
	light *models.Light
}

func (l *lightLuminary) SetOnOff(on bool) error {
	if err := l.luminary.SetOnOff(on); err != nil {
		return err
	}
	l.light.ApplyOnOff(on)
	return nil
}

func (l *lightLuminary) SetLuminance(level uint8, transition uint16) error {
	if err := l.luminary.SetLuminance(level, transition); err != nil {
		return err
	}
	l.light.ApplyLuminance(level)
	return nil
}

func (l *lightLuminary) SetTemperature(kelvin uint16, transition uint16) error {
	if err := l.luminary.SetTemperature(kelvin, transition); err != nil {
		return err
	}
	l.light.ApplyTemperature(kelvin)
	return nil
}

func (l *lightLuminary) SetRGB(r, g, b uint8, transition uint16) error {
	if err := l.luminary.SetRGB(r, g, b, transition); err != nil {
		return err
	}
	l.light.ApplyRGB(r, g, b)
	return nil
}
