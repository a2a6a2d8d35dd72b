package x11

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// rawConn is a second, minimal connection to the X server used for the
// input extension, which the protocol binding does not generate. XIDs
// are server-global, so requests on this connection can reference
// windows created on the main one.
type rawConn struct {
	conn net.Conn
	br   *bufio.Reader
	seq  uint16
}

// dialDisplay connects and authenticates against the server in DISPLAY.
func dialDisplay() (*rawConn, error) {
	display := os.Getenv("DISPLAY")
	if display == "" {
		return nil, fmt.Errorf("DISPLAY is not set")
	}
	host, rest, ok := strings.Cut(display, ":")
	if !ok {
		return nil, fmt.Errorf("malformed DISPLAY %q", display)
	}
	number := rest
	if i := strings.IndexByte(number, '.'); i >= 0 {
		number = number[:i]
	}
	if _, err := strconv.Atoi(number); err != nil {
		return nil, fmt.Errorf("malformed DISPLAY %q", display)
	}

	var conn net.Conn
	var err error
	if host == "" || host == "unix" {
		conn, err = net.Dial("unix", "/tmp/.X11-unix/X"+number)
	} else {
		conn, err = net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(6000+atoi(number))))
	}
	if err != nil {
		return nil, err
	}

	c := &rawConn{conn: conn, br: bufio.NewReader(conn)}
	name, data := findAuth(number)
	if err := c.handshake(name, data); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// handshake performs the connection setup and discards the setup block;
// the caller already knows the screen layout from the main connection.
func (c *rawConn) handshake(authName string, authData []byte) error {
	buf := make([]byte, 0, 64)
	buf = append(buf, 'l', 0) // little-endian, pad
	buf = append(buf, 11, 0, 0, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(authName)))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(authData)))
	buf = append(buf, 0, 0)
	buf = appendPadded(buf, []byte(authName))
	buf = appendPadded(buf, authData)
	if _, err := c.conn.Write(buf); err != nil {
		return err
	}

	var head [8]byte
	if _, err := io.ReadFull(c.br, head[:]); err != nil {
		return err
	}
	extra := make([]byte, int(binary.LittleEndian.Uint16(head[6:]))*4)
	if _, err := io.ReadFull(c.br, extra); err != nil {
		return err
	}
	switch head[0] {
	case 1:
		return nil
	case 0:
		reasonLen := int(head[1])
		if reasonLen > len(extra) {
			reasonLen = len(extra)
		}
		return fmt.Errorf("connection refused: %s", string(extra[:reasonLen]))
	default:
		return fmt.Errorf("unexpected setup status %d", head[0])
	}
}

func appendPadded(dst, data []byte) []byte {
	dst = append(dst, data...)
	for len(dst)%4 != 0 {
		dst = append(dst, 0)
	}
	return dst
}

// request writes one request and returns its sequence number.
func (c *rawConn) request(opcode, minor byte, body []byte) (uint16, error) {
	length := (4 + len(body)) / 4
	buf := make([]byte, 0, 4+len(body))
	buf = append(buf, opcode, minor)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(length))
	buf = append(buf, body...)
	c.seq++
	_, err := c.conn.Write(buf)
	return c.seq, err
}

// readReply reads 32-byte units until the reply for seq arrives. Events
// and errors read before it are discarded; this is only used during
// setup, before any event mask is selected.
func (c *rawConn) readReply(seq uint16) ([]byte, error) {
	for {
		var unit [32]byte
		if _, err := io.ReadFull(c.br, unit[:]); err != nil {
			return nil, err
		}
		switch unit[0] {
		case 0: // error
			if binary.LittleEndian.Uint16(unit[2:]) == seq {
				return nil, fmt.Errorf("request error code %d", unit[1])
			}
		case 1: // reply
			reply := unit[:]
			if extra := binary.LittleEndian.Uint32(unit[4:]); extra > 0 {
				tail := make([]byte, extra*4)
				if _, err := io.ReadFull(c.br, tail); err != nil {
					return nil, err
				}
				reply = append(reply, tail...)
			}
			if binary.LittleEndian.Uint16(unit[2:]) == seq {
				return reply, nil
			}
		}
	}
}

// queryExtension returns the major opcode of a named extension.
func (c *rawConn) queryExtension(name string) (byte, error) {
	body := make([]byte, 0, 4+len(name)+3)
	body = binary.LittleEndian.AppendUint16(body, uint16(len(name)))
	body = append(body, 0, 0)
	body = appendPadded(body, []byte(name))

	const opQueryExtension = 98
	seq, err := c.request(opQueryExtension, 0, body)
	if err != nil {
		return 0, err
	}
	reply, err := c.readReply(seq)
	if err != nil {
		return 0, err
	}
	if reply[8] == 0 {
		return 0, fmt.Errorf("extension %s not present", name)
	}
	return reply[9], nil
}

func (c *rawConn) close() error {
	return c.conn.Close()
}

// findAuth locates the MIT-MAGIC-COOKIE-1 entry for the display number
// in the Xauthority file. Missing files or entries mean host-based auth.
func findAuth(display string) (string, []byte) {
	path := os.Getenv("XAUTHORITY")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		path = home + "/.Xauthority"
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		entry, err := readAuthEntry(r)
		if err != nil {
			return "", nil
		}
		if (entry.number == display || entry.number == "") &&
			entry.name == "MIT-MAGIC-COOKIE-1" {
			return entry.name, entry.data
		}
	}
}

type authEntry struct {
	family  uint16
	address string
	number  string
	name    string
	data    []byte
}

func readAuthEntry(r *bufio.Reader) (*authEntry, error) {
	var family uint16
	if err := binary.Read(r, binary.BigEndian, &family); err != nil {
		return nil, err
	}
	readBlock := func() ([]byte, error) {
		var n uint16
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		block := make([]byte, n)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, err
		}
		return block, nil
	}
	address, err := readBlock()
	if err != nil {
		return nil, err
	}
	number, err := readBlock()
	if err != nil {
		return nil, err
	}
	name, err := readBlock()
	if err != nil {
		return nil, err
	}
	data, err := readBlock()
	if err != nil {
		return nil, err
	}
	return &authEntry{
		family:  family,
		address: string(address),
		number:  string(number),
		name:    string(name),
		data:    data,
	}, nil
}
