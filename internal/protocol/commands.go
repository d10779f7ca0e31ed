package protocol

// Command is a gateway command code, one byte on the wire.
type Command byte

const (
	CommandAllLightStatus Command = 0x13
	CommandGroupList      Command = 0x1e
	CommandGroupInfo      Command = 0x26
	CommandLuminance      Command = 0x31
	CommandOnOff          Command = 0x32
	CommandTemperature    Command = 0x33
	CommandColour         Command = 0x36
	CommandLightStatus    Command = 0x68
)

const (
	// flag byte: group/global commands vs light-targeted commands
	flagGroup byte = 0x02
	flagLight byte = 0x00

	// constant byte carried in every request header
	headerMagic byte = 0x07

	// declared length excludes the 2 length bytes themselves:
	// 6 header bytes for global commands, plus the 8-byte selector
	// for targeted ones
	globalBaseLength   = 6
	targetedBaseLength = 14

	// responses start with 2 length bytes plus 5 echoed header bytes
	responseHeaderLength = 7
)
