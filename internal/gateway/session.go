package gateway

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"lightify/internal/config"
	"lightify/internal/models"
	"lightify/internal/protocol"
	"lightify/internal/transport"
)

// ErrNotFound is returned when a light or group lookup yields nothing.
// Not necessarily fatal; callers decide.
var ErrNotFound = errors.New("not found")

// connection is the session's view of the transport.
type connection interface {
	Send(frame []byte) error
	Receive() ([]byte, error)
	Close() error
}

// Session is the top-level gateway object: it owns the connection, the
// request sequence counter, and the light and group registries. Exactly one
// request is outstanding at a time; a caller sharing a session across
// goroutines must serialise access externally.
type Session struct {
	logger *log.Logger
	conn   connection

	// incremented before every request, wraps at 256
	seq uint8

	lights map[uint64]*models.Light
	groups map[string]*models.Group
}

// Connect dials the gateway and returns a fresh session: sequence counter
// at 1, empty registries.
func Connect(cfg config.Config, logger *log.Logger) (*Session, error) {
	conn, err := transport.Dial(cfg.GatewayIP, cfg.GatewayPort, cfg.Timeout(), logger)
	if err != nil {
		return nil, err
	}
	return NewSession(conn, logger), nil
}

// NewSession builds a session over an already-open connection.
func NewSession(conn connection, logger *log.Logger) *Session {
	return &Session{
		logger: logger,
		conn:   conn,
		seq:    1,
		lights: map[uint64]*models.Light{},
		groups: map[string]*models.Group{},
	}
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Lights is the registry from light address to Light, as of the last poll.
func (s *Session) Lights() map[uint64]*models.Light {
	return s.lights
}

// Groups is the registry from group name to Group, as of the last refresh.
func (s *Session) Groups() map[string]*models.Group {
	return s.groups
}

// LightByName scans the registry for the first light with the given name.
func (s *Session) LightByName(name string) (*models.Light, error) {
	light, found := lo.Find(lo.Values(s.lights), func(l *models.Light) bool {
		return l.Name == name
	})
	if !found {
		return nil, fmt.Errorf("light %q: %w", name, ErrNotFound)
	}
	return light, nil
}

// GroupByName looks a group up in the registry.
func (s *Session) GroupByName(name string) (*models.Group, error) {
	group, ok := s.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	return group, nil
}

// GroupLights resolves a group's member addresses through the light
// registry. Members missing from the last poll are skipped.
func (s *Session) GroupLights(group *models.Group) []*models.Light {
	return lo.FilterMap(group.Members, func(addr uint64, _ int) (*models.Light, bool) {
		light, ok := s.lights[addr]
		return light, ok
	})
}

// RefreshGroups replaces the group registry: one group-list query, then a
// group-info query per group for membership. Any failure aborts the whole
// refresh and leaves the previous registry untouched.
func (s *Session) RefreshGroups() error {
	resp, err := s.roundTrip(protocol.EncodeGroupList(s.nextSeq()))
	if err != nil {
		return fmt.Errorf("refreshing group list: %w", err)
	}
	entries, err := protocol.DecodeGroupList(resp)
	if err != nil {
		return fmt.Errorf("decoding group list: %w", err)
	}

	groups := make(map[string]*models.Group, len(entries))
	for _, entry := range entries {
		info, err := s.groupInfo(entry.Index)
		if err != nil {
			return fmt.Errorf("fetching members of group %q: %w", entry.Name, err)
		}
		s.logger.Debug("fetched group", "index", entry.Index, "name", entry.Name, "members", len(info.Members))
		groups[entry.Name] = &models.Group{
			Index:   entry.Index,
			Name:    entry.Name,
			Members: info.Members,
		}
	}

	s.groups = groups
	return nil
}

func (s *Session) groupInfo(index uint16) (*protocol.GroupInfo, error) {
	resp, err := s.roundTrip(protocol.EncodeGroupInfo(index, s.nextSeq()))
	if err != nil {
		return nil, err
	}
	return protocol.DecodeGroupInfo(resp)
}

// RefreshAllLightStatus polls the gateway for every light and replaces the
// light registry with the poll result. A light already known by address
// keeps its identity and has its fields overwritten in place; addresses
// absent from the poll are dropped. A failure partway through leaves the
// previous registry intact.
func (s *Session) RefreshAllLightStatus() error {
	resp, err := s.roundTrip(protocol.EncodeAllLightStatus(s.nextSeq(), 1))
	if err != nil {
		return fmt.Errorf("refreshing light status: %w", err)
	}
	records, err := protocol.DecodeAllLightStatus(resp)
	if err != nil {
		return fmt.Errorf("decoding light status: %w", err)
	}

	lights := make(map[uint64]*models.Light, len(records))
	for _, rec := range records {
		light, ok := s.lights[rec.Address]
		if !ok {
			light = &models.Light{}
		}
		applyStatus(light, rec)
		s.logger.Debug("polled light", "mac", light.MACAddress(), "name", light.Name, "on", light.On)
		lights[rec.Address] = light
	}

	s.lights = lights
	return nil
}

// RefreshLightStatus issues the single-light status query. The gateway's
// response body is undocumented and is discarded after the round trip.
func (s *Session) RefreshLightStatus(light *models.Light) error {
	_, err := s.roundTrip(protocol.EncodeLightStatus(light.Address, s.nextSeq()))
	if err != nil {
		return fmt.Errorf("refreshing light %q: %w", light.Name, err)
	}
	return nil
}

func applyStatus(light *models.Light, rec protocol.LightStatus) {
	light.ID = rec.ID
	light.Address = rec.Address
	light.Type = rec.Type
	light.FirmwareVersion = rec.FirmwareVersion
	light.Online = rec.Online
	light.GroupID = rec.GroupID
	light.On = rec.On
	light.Luminance = rec.Luminance
	light.Temperature = rec.Temperature
	light.Red = rec.Red
	light.Green = rec.Green
	light.Blue = rec.Blue
	light.Alpha = rec.Alpha
	light.Name = rec.Name
	light.Reserved = rec.Reserved
}

func (s *Session) nextSeq() uint8 {
	s.seq++
	return s.seq
}

// roundTrip sends one frame and blocks for its paired response.
func (s *Session) roundTrip(frame []byte) ([]byte, error) {
	if err := s.conn.Send(frame); err != nil {
		return nil, err
	}
	return s.conn.Receive()
}

// command is a round trip whose acknowledgement frame is discarded.
func (s *Session) command(frame []byte) error {
	_, err := s.roundTrip(frame)
	return err
}
