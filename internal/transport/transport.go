package transport

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPort is the TCP port Lightify gateways listen on.
const DefaultPort = 4000

// TransportError wraps a socket-level failure: connection refused, reset,
// or EOF before a full frame arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Conn owns the single TCP connection to the gateway. It is opened once and
// lives for the life of the session; there is no reconnect path. A zero
// timeout means calls block indefinitely, which is the protocol's native
// behaviour.
type Conn struct {
	logger  *log.Logger
	conn    net.Conn
	timeout time.Duration
}

// Dial opens the TCP connection to host:port.
func Dial(host string, port int, timeout time.Duration, logger *log.Logger) (*Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &TransportError{Op: "dial " + addr, Err: err}
	}
	logger.Info("connected to gateway", "addr", addr)
	return New(conn, timeout, logger), nil
}

// New wraps an established connection.
func New(conn net.Conn, timeout time.Duration, logger *log.Logger) *Conn {
	return &Conn{logger: logger, conn: conn, timeout: timeout}
}

// Send writes the full frame, blocking until every byte is accepted.
func (c *Conn) Send(frame []byte) error {
	c.logger.Debug("sending frame", "bytes", hex.EncodeToString(frame))

	if err := c.setDeadline(); err != nil {
		return err
	}
	if _, err := c.conn.Write(frame); err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

// Receive reads one complete response frame: the 2-byte little-endian length
// prefix, then exactly that many further bytes, looping over partial reads
// until the declared length is satisfied. The returned slice includes the
// length prefix.
func (c *Conn) Receive() ([]byte, error) {
	if err := c.setDeadline(); err != nil {
		return nil, err
	}

	var prefix [2]byte
	if _, err := io.ReadFull(c.conn, prefix[:]); err != nil {
		return nil, &TransportError{Op: "receive length", Err: err}
	}
	length := binary.LittleEndian.Uint16(prefix[:])

	frame := make([]byte, 2+int(length))
	copy(frame, prefix[:])
	if _, err := io.ReadFull(c.conn, frame[2:]); err != nil {
		return nil, &TransportError{Op: "receive body", Err: err}
	}

	c.logger.Debug("received frame", "bytes", hex.EncodeToString(frame))
	return frame, nil
}

// Close tears the connection down.
func (c *Conn) Close() error {
	if err := c.conn.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}

func (c *Conn) setDeadline() error {
	if c.timeout == 0 {
		return nil
	}
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return &TransportError{Op: "set deadline", Err: err}
	}
	return nil
}
