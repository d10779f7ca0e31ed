package protocol

import (
	"encoding/binary"
)

// Target selects what a command frame is addressed to: a single light,
// a group, or the gateway itself (global queries).
type Target struct {
	flag     byte
	selector [8]byte
	targeted bool
}

// LightTarget addresses one light by its 64-bit address (the device MAC
// encoded as a little-endian integer).
func LightTarget(addr uint64) Target {
	t := Target{flag: flagLight, targeted: true}
	binary.LittleEndian.PutUint64(t.selector[:], addr)
	return t
}

// GroupTarget addresses a group by index; the index occupies the low bytes
// of the 8-byte selector, the rest are zero.
func GroupTarget(index uint16) Target {
	t := Target{flag: flagGroup, targeted: true}
	binary.LittleEndian.PutUint64(t.selector[:], uint64(index))
	return t
}

// GlobalTarget addresses the gateway itself (group-list, all-light-status).
func GlobalTarget() Target {
	return Target{flag: flagGroup}
}

// Encode builds a complete outbound frame: little-endian length, flag,
// command, two reserved bytes, the 0x07 constant, the sequence number,
// the 8-byte selector for targeted commands, then the payload.
func Encode(cmd Command, target Target, seq uint8, payload []byte) []byte {
	base := globalBaseLength
	if target.targeted {
		base = targetedBaseLength
	}
	length := base + len(payload)

	frame := make([]byte, 0, 2+length)
	var header [8]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(length))
	header[2] = target.flag
	header[3] = byte(cmd)
	// header[4:6] reserved, always zero
	header[6] = headerMagic
	header[7] = seq

	frame = append(frame, header[:]...)
	if target.targeted {
		frame = append(frame, target.selector[:]...)
	}
	return append(frame, payload...)
}

// EncodeOnOff builds a set-on-off command frame.
func EncodeOnOff(target Target, seq uint8, on bool) []byte {
	payload := []byte{0}
	if on {
		payload[0] = 1
	}
	return Encode(CommandOnOff, target, seq, payload)
}

// EncodeLuminance builds a set-luminance command frame; transition is the
// fade time in the protocol's transition units.
func EncodeLuminance(target Target, seq uint8, level uint8, transition uint16) []byte {
	payload := make([]byte, 3)
	payload[0] = level
	binary.LittleEndian.PutUint16(payload[1:3], transition)
	return Encode(CommandLuminance, target, seq, payload)
}

// EncodeTemperature builds a set-temperature command frame (Kelvin).
func EncodeTemperature(target Target, seq uint8, kelvin uint16, transition uint16) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint16(payload[0:2], kelvin)
	binary.LittleEndian.PutUint16(payload[2:4], transition)
	return Encode(CommandTemperature, target, seq, payload)
}

// EncodeColour builds a set-colour command frame. The fourth colour byte is
// a fixed 0xff alpha placeholder.
func EncodeColour(target Target, seq uint8, r, g, b uint8, transition uint16) []byte {
	payload := make([]byte, 6)
	payload[0] = r
	payload[1] = g
	payload[2] = b
	payload[3] = 0xff
	binary.LittleEndian.PutUint16(payload[4:6], transition)
	return Encode(CommandColour, target, seq, payload)
}

// EncodeGroupList builds the global group-list query.
func EncodeGroupList(seq uint8) []byte {
	return Encode(CommandGroupList, GlobalTarget(), seq, nil)
}

// EncodeGroupInfo builds the membership query for one group.
func EncodeGroupInfo(index uint16, seq uint8) []byte {
	return Encode(CommandGroupInfo, GroupTarget(index), seq, nil)
}

// EncodeAllLightStatus builds the global status poll; the gateway expects a
// single flag byte, conventionally 1.
func EncodeAllLightStatus(seq uint8, flag byte) []byte {
	return Encode(CommandAllLightStatus, GlobalTarget(), seq, []byte{flag})
}

// EncodeLightStatus builds the single-light status query.
func EncodeLightStatus(addr uint64, seq uint8) []byte {
	return Encode(CommandLightStatus, LightTarget(addr), seq, nil)
}
