package telnet

import (
	"bufio"
	"bytes"
	"net"
	"sync"
	"time"
)

// Telnet command bytes, RFC 854.
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240
)

// Negotiable options.
const (
	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Conn is a line-oriented Telnet connection. Reads strip IAC command
// sequences and control characters; writes are serialized so prompt and
// notification text from different code paths never interleave.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader

	writeMu      sync.Mutex
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps an accepted TCP connection. Zero timeouts disable the
// corresponding deadline.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate announces the server's options. We suppress go-ahead; echo
// stays client-side except during password entry.
func (c *Conn) Negotiate() error {
	return c.send([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of input without its terminator.
// IAC sequences and control characters (except tab) are dropped.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return line.String(), err
		}
		switch {
		case b == IAC:
			if err := c.skipCommand(); err != nil {
				return line.String(), err
			}
		case b == '\n':
			return line.String(), nil
		case b == '\r':
			// A bare CR terminates the line; CRLF consumes the LF too.
			if next, err := c.reader.Peek(1); err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			return line.String(), nil
		case b >= 32 || b == '\t':
			line.WriteByte(b)
		}
	}
}

// skipCommand consumes the remainder of an IAC sequence whose lead byte
// was already read.
func (c *Conn) skipCommand() error {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = c.reader.ReadByte()
		return err
	case SB:
		for {
			b, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if b != IAC {
				continue
			}
			next, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if next == SE {
				return nil
			}
		}
	default:
		// Escaped 0xFF, NOP, GA: nothing further to consume.
		return nil
	}
}

// ReadPassword reads one line with client echo suppressed, restoring
// echo afterwards even when the read fails. A blank line is written so
// the cursor moves past the invisible input.
func (c *Conn) ReadPassword() (string, error) {
	if err := c.send([]byte{IAC, WILL, OptEcho}); err != nil {
		return "", err
	}
	line, err := c.ReadLine()
	_ = c.send([]byte{IAC, WONT, OptEcho})
	_ = c.send([]byte("\r\n"))
	return line, err
}

// WriteLine sends text followed by CRLF.
func (c *Conn) WriteLine(text string) error {
	return c.send(append([]byte(text), '\r', '\n'))
}

// WritePrompt sends text with no terminator, leaving the cursor on the
// prompt line.
func (c *Conn) WritePrompt(prompt string) error {
	return c.send([]byte(prompt))
}

// Write sends raw bytes.
func (c *Conn) Write(data []byte) error {
	return c.send(data)
}

func (c *Conn) send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr reports the client's network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

// FilterIAC strips Telnet command sequences from a raw byte slice,
// keeping an escaped IAC IAC as a single literal 0xFF.
func FilterIAC(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); {
		if input[i] != IAC || i+1 >= len(input) {
			out = append(out, input[i])
			i++
			continue
		}
		switch cmd := input[i+1]; cmd {
		case WILL, WONT, DO, DONT:
			i += 3
		case SB:
			j := i + 2
			for j < len(input)-1 && !(input[j] == IAC && input[j+1] == SE) {
				j++
			}
			if j < len(input)-1 {
				j += 2
			}
			i = j
		case IAC:
			out = append(out, IAC)
			i += 2
		default:
			i += 2
		}
	}
	return out
}
