package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lightify/internal/protocol"
)

func Test_EncodeOnOff_LightTarget(t *testing.T) {

	frame := protocol.EncodeOnOff(protocol.LightTarget(0x0123456789ABCDEF), 5, true)

	expected := []byte{
		0x0f, 0x00, // length: 14 + 1 payload byte
		0x00,       // light flag
		0x32,       // on/off command
		0x00, 0x00, // reserved
		0x07, // header constant
		0x05, // sequence
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01, // address, little-endian
		0x01, // on
	}
	assert.Equal(t, expected, frame)
}

func Test_EncodeOnOff_Off(t *testing.T) {
	frame := protocol.EncodeOnOff(protocol.LightTarget(1), 9, false)
	assert.Equal(t, byte(0x00), frame[len(frame)-1])
}

func Test_Encode_GroupTargetPadding(t *testing.T) {

	frame := protocol.EncodeOnOff(protocol.GroupTarget(3), 12, true)

	// group flag, then the index padded into the 8-byte selector
	assert.Equal(t, byte(0x02), frame[2])
	assert.Equal(t, []byte{0x03, 0, 0, 0, 0, 0, 0, 0}, frame[8:16])
}

func Test_Encode_GlobalFrames(t *testing.T) {

	tests := []struct {
		name     string
		frame    []byte
		expected []byte
	}{
		{
			name:     "group list",
			frame:    protocol.EncodeGroupList(7),
			expected: []byte{0x06, 0x00, 0x02, 0x1e, 0x00, 0x00, 0x07, 0x07},
		},
		{
			name:     "all light status",
			frame:    protocol.EncodeAllLightStatus(8, 1),
			expected: []byte{0x07, 0x00, 0x02, 0x13, 0x00, 0x00, 0x07, 0x08, 0x01},
		},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.frame)
		})
	}
}

func Test_Encode_CommandPayloads(t *testing.T) {

	target := protocol.LightTarget(0x42)

	tests := []struct {
		name    string
		frame   []byte
		command byte
		payload []byte
	}{
		{
			name:    "luminance: level then transition",
			frame:   protocol.EncodeLuminance(target, 1, 75, 500),
			command: 0x31,
			payload: []byte{75, 0xf4, 0x01},
		},
		{
			name:    "temperature: kelvin then transition",
			frame:   protocol.EncodeTemperature(target, 1, 2700, 10),
			command: 0x33,
			payload: []byte{0x8c, 0x0a, 0x0a, 0x00},
		},
		{
			name:    "colour: rgb, fixed alpha, transition",
			frame:   protocol.EncodeColour(target, 1, 255, 200, 150, 10),
			command: 0x36,
			payload: []byte{255, 200, 150, 0xff, 0x0a, 0x00},
		},
		{
			name:    "light status: empty payload",
			frame:   protocol.EncodeLightStatus(0x42, 1),
			command: 0x68,
			payload: []byte{},
		},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.command, c.frame[3])
			assert.Equal(t, c.payload, c.frame[16:])
			// declared length covers everything after the length bytes
			assert.Equal(t, 14+len(c.payload), int(c.frame[0])|int(c.frame[1])<<8)
		})
	}
}

func Test_Encode_GroupInfoIsGroupFlagged(t *testing.T) {
	frame := protocol.EncodeGroupInfo(9, 3)
	assert.Equal(t, byte(0x02), frame[2])
	assert.Equal(t, byte(0x26), frame[3])
	assert.Equal(t, byte(9), frame[8])
	assert.Len(t, frame, 16)
}
