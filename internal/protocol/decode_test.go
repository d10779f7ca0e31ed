package protocol_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightify/internal/protocol"
)

// responseFrame wraps a command-specific body in the 7-byte response header
// (2-byte length prefix plus 5 echoed bytes).
func responseFrame(body []byte) []byte {
	frame := make([]byte, 7+len(body))
	binary.LittleEndian.PutUint16(frame[0:2], uint16(5+len(body)))
	copy(frame[7:], body)
	return frame
}

func paddedName(name string) []byte {
	b := make([]byte, 16)
	copy(b, name)
	return b
}

func Test_DecodeGroupList(t *testing.T) {

	body := []byte{2, 0}
	body = append(body, 1, 0)
	body = append(body, paddedName("Kitchen")...)
	body = append(body, 2, 0)
	body = append(body, paddedName("Living Room")...)

	entries, err := protocol.DecodeGroupList(responseFrame(body))

	require.NoError(t, err)
	assert.Equal(t, []protocol.GroupEntry{
		{Index: 1, Name: "Kitchen"},
		{Index: 2, Name: "Living Room"},
	}, entries)
}

func Test_DecodeGroupList_NoGroups(t *testing.T) {
	entries, err := protocol.DecodeGroupList(responseFrame([]byte{0, 0}))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func Test_DecodeGroupList_ShortEntry(t *testing.T) {

	// one entry declared, name field truncated
	body := []byte{1, 0, 1, 0}
	body = append(body, []byte("Kit")...)

	_, err := protocol.DecodeGroupList(responseFrame(body))

	var decodeErr *protocol.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "group name", decodeErr.Field)
}

func Test_DecodeGroupInfo(t *testing.T) {

	body := []byte{7, 0}
	body = append(body, paddedName("Hallway")...)
	body = append(body, 2)
	body = append(body, 0x11, 0x00, 0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAA)
	body = append(body, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)

	info, err := protocol.DecodeGroupInfo(responseFrame(body))

	require.NoError(t, err)
	assert.Equal(t, uint16(7), info.Index)
	assert.Equal(t, "Hallway", info.Name)
	assert.Equal(t, []uint64{0xAABBCCDDEEFF0011, 0x01}, info.Members)
}

func Test_DecodeGroupInfo_ShortAddress(t *testing.T) {

	body := []byte{7, 0}
	body = append(body, paddedName("Hallway")...)
	body = append(body, 1)
	body = append(body, 0x11, 0x22, 0x33) // truncated 8-byte address

	_, err := protocol.DecodeGroupInfo(responseFrame(body))

	var decodeErr *protocol.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "light address", decodeErr.Field)
	assert.Equal(t, 8, decodeErr.Need)
	assert.Equal(t, 3, decodeErr.Have)
}

// statusRecord builds one 50-byte all-light-status record.
func statusRecord(name string) []byte {
	rec := []byte{1, 0}                                             // id
	rec = append(rec, 0x11, 0x00, 0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAA) // address
	rec = append(rec, 2)                                            // type
	rec = append(rec, 0x01, 0x02, 0x03, 0x04)                       // firmware, big-endian
	rec = append(rec, 1)                                            // online
	rec = append(rec, 3, 0)                                         // group id
	rec = append(rec, 1)                                            // on
	rec = append(rec, 128)                                          // luminance
	rec = append(rec, 0x8c, 0x0a)                                   // 2700K
	rec = append(rec, 255, 200, 150, 255)                           // rgba
	rec = append(rec, paddedName(name)...)
	rec = append(rec, 0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0x01) // reserved
	return rec
}

func Test_DecodeAllLightStatus(t *testing.T) {

	body := []byte{1, 0}
	body = append(body, statusRecord("Test")...)

	records, err := protocol.DecodeAllLightStatus(responseFrame(body))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, protocol.LightStatus{
		ID:              1,
		Address:         0xAABBCCDDEEFF0011,
		Type:            2,
		FirmwareVersion: 0x01020304,
		Online:          true,
		GroupID:         3,
		On:              true,
		Luminance:       128,
		Temperature:     2700,
		Red:             255,
		Green:           200,
		Blue:            150,
		Alpha:           255,
		Name:            "Test",
		Reserved:        [8]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0x01},
	}, records[0])
}

func Test_DecodeAllLightStatus_TruncatedRecord(t *testing.T) {

	// two records declared, second cut off mid-firmware
	body := []byte{2, 0}
	body = append(body, statusRecord("Test")...)
	body = append(body, 2, 0)
	body = append(body, 0x11, 0x00, 0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAB)
	body = append(body, 2)
	body = append(body, 0x01, 0x02)

	_, err := protocol.DecodeAllLightStatus(responseFrame(body))

	var decodeErr *protocol.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "firmware version", decodeErr.Field)
}

func Test_Decode_ShortResponseHeader(t *testing.T) {

	for _, frame := range [][]byte{nil, {0x01}, {0x05, 0x00, 0x00}} {
		_, err := protocol.DecodeGroupList(frame)

		var decodeErr *protocol.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "response header", decodeErr.Field)
	}
}

func Test_DecodeErrorMessageNamesField(t *testing.T) {
	err := &protocol.DecodeError{Field: "group count", Need: 2, Have: 1}
	assert.Contains(t, err.Error(), "group count")
}
