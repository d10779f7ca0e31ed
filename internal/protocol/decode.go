package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DecodeError reports a response body that ended before the named field
// could be read. The decoder never substitutes defaults for missing bytes.
type DecodeError struct {
	Field string
	Need  int
	Have  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("short response: reading %s needs %d bytes, have %d", e.Field, e.Need, e.Have)
}

// GroupEntry is one row of a group-list response.
type GroupEntry struct {
	Index uint16
	Name  string
}

// GroupInfo is the decoded body of a group-info response.
type GroupInfo struct {
	Index   uint16
	Name    string
	Members []uint64
}

// LightStatus is one decoded 50-byte record of an all-light-status response.
type LightStatus struct {
	ID              uint16
	Address         uint64
	Type            byte
	FirmwareVersion uint32
	Online          bool
	GroupID         uint16
	On              bool
	Luminance       uint8
	Temperature     uint16
	Red             uint8
	Green           uint8
	Blue            uint8
	Alpha           uint8
	Name            string
	// trailing 8 bytes of the record, meaning unknown, preserved as-is
	Reserved [8]byte
}

// reader walks a response body, turning any short read into a DecodeError
// naming the field that overran the buffer.
type reader struct {
	buf []byte
	off int
}

func (r *reader) take(field string, n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, &DecodeError{Field: field, Need: n, Have: len(r.buf) - r.off}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) byte(field string) (byte, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint16(field string) (uint16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32be(field string) (uint32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) uint64(field string) (uint64, error) {
	b, err := r.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) name(field string) (string, error) {
	b, err := r.take(field, 16)
	if err != nil {
		return "", err
	}
	return trimName(b), nil
}

// trimName cuts a fixed-width NUL-padded name field down to the string.
func trimName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// body skips the 7-byte response header (length prefix plus echoed header
// bytes) and returns a reader over the command-specific body.
func body(frame []byte) (*reader, error) {
	if len(frame) < responseHeaderLength {
		return nil, &DecodeError{Field: "response header", Need: responseHeaderLength, Have: len(frame)}
	}
	return &reader{buf: frame[responseHeaderLength:]}, nil
}

// DecodeGroupList decodes a group-list response frame into its entries.
func DecodeGroupList(frame []byte) ([]GroupEntry, error) {
	r, err := body(frame)
	if err != nil {
		return nil, err
	}

	count, err := r.uint16("group count")
	if err != nil {
		return nil, err
	}

	entries := make([]GroupEntry, 0, count)
	for i := 0; i < int(count); i++ {
		index, err := r.uint16("group index")
		if err != nil {
			return nil, err
		}
		name, err := r.name("group name")
		if err != nil {
			return nil, err
		}
		entries = append(entries, GroupEntry{Index: index, Name: name})
	}
	return entries, nil
}

// DecodeGroupInfo decodes a group-info response frame: the group header
// followed by the member light addresses.
func DecodeGroupInfo(frame []byte) (*GroupInfo, error) {
	r, err := body(frame)
	if err != nil {
		return nil, err
	}

	info := GroupInfo{}
	if info.Index, err = r.uint16("group index"); err != nil {
		return nil, err
	}
	if info.Name, err = r.name("group name"); err != nil {
		return nil, err
	}
	count, err := r.byte("light count")
	if err != nil {
		return nil, err
	}

	info.Members = make([]uint64, 0, count)
	for i := 0; i < int(count); i++ {
		addr, err := r.uint64("light address")
		if err != nil {
			return nil, err
		}
		info.Members = append(info.Members, addr)
	}
	return &info, nil
}

// DecodeAllLightStatus decodes an all-light-status response frame into one
// LightStatus per 50-byte record.
func DecodeAllLightStatus(frame []byte) ([]LightStatus, error) {
	r, err := body(frame)
	if err != nil {
		return nil, err
	}

	count, err := r.uint16("light count")
	if err != nil {
		return nil, err
	}

	records := make([]LightStatus, 0, count)
	for i := 0; i < int(count); i++ {
		rec, err := decodeLightStatusRecord(r)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func decodeLightStatusRecord(r *reader) (*LightStatus, error) {
	var (
		rec LightStatus
		err error
	)

	if rec.ID, err = r.uint16("light id"); err != nil {
		return nil, err
	}
	if rec.Address, err = r.uint64("light address"); err != nil {
		return nil, err
	}
	if rec.Type, err = r.byte("light type"); err != nil {
		return nil, err
	}
	if rec.FirmwareVersion, err = r.uint32be("firmware version"); err != nil {
		return nil, err
	}

	online, err := r.byte("online flag")
	if err != nil {
		return nil, err
	}
	rec.Online = online != 0

	if rec.GroupID, err = r.uint16("group id"); err != nil {
		return nil, err
	}

	on, err := r.byte("on/off status")
	if err != nil {
		return nil, err
	}
	rec.On = on != 0

	if rec.Luminance, err = r.byte("luminance"); err != nil {
		return nil, err
	}
	if rec.Temperature, err = r.uint16("temperature"); err != nil {
		return nil, err
	}
	if rec.Red, err = r.byte("red"); err != nil {
		return nil, err
	}
	if rec.Green, err = r.byte("green"); err != nil {
		return nil, err
	}
	if rec.Blue, err = r.byte("blue"); err != nil {
		return nil, err
	}
	if rec.Alpha, err = r.byte("alpha"); err != nil {
		return nil, err
	}
	if rec.Name, err = r.name("light name"); err != nil {
		return nil, err
	}

	reserved, err := r.take("reserved bytes", 8)
	if err != nil {
		return nil, err
	}
	copy(rec.Reserved[:], reserved)

	return &rec, nil
}
