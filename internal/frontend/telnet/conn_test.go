package telnet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFilterIAC(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"plain text", []byte("hello world"), []byte("hello world")},
		{"will", []byte{IAC, WILL, OptEcho, 'h', 'i'}, []byte("hi")},
		{"wont", []byte{IAC, WONT, OptSuppressGoAhead, 'o', 'k'}, []byte("ok")},
		{"do mid-text", []byte{'a', IAC, DO, OptLinemode, 'b'}, []byte("ab")},
		{"dont only", []byte{IAC, DONT, OptEcho}, []byte{}},
		{"subnegotiation", []byte{IAC, SB, 24, 0, 'x', 't', 'e', 'r', 'm', IAC, SE, 'z'}, []byte("z")},
		{"escaped iac", []byte{'a', IAC, IAC, 'b'}, []byte{'a', IAC, 'b'}},
		{"nop", []byte{'x', IAC, NOP, 'y'}, []byte("xy")},
		{
			"back to back commands",
			[]byte{IAC, WILL, OptSuppressGoAhead, IAC, WILL, OptEcho, 'h', 'e', 'y'},
			[]byte("hey"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterIAC(tc.input))
		})
	}
}

// Property: input without the IAC byte passes through untouched.
func TestFilterIAC_PassThroughProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.Byte().Filter(func(b byte) bool { return b != IAC }), 0, 200).
			Draw(t, "input")
		assert.Equal(t, input, FilterIAC(input))
	})
}

// Property: filtering only ever removes bytes.
func TestFilterIAC_NeverGrowsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(t, "input")
		assert.LessOrEqual(t, len(FilterIAC(input)), len(input))
	})
}

// pipeConn returns a Conn backed by one end of an in-memory pipe and the
// peer for the test to drive.
func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewConn(server, time.Second, time.Second), client
}

func TestConn_ReadLineVariants(t *testing.T) {
	cases := []struct {
		name string
		wire []byte
		want string
	}{
		{"crlf", []byte("look\r\n"), "look"},
		{"bare lf", []byte("look\n"), "look"},
		{"bare cr", []byte("look\rnext"), "look"},
		{"iac interleaved", []byte{'d', 'o', IAC, WILL, OptEcho, 'n', 'e', '\r', '\n'}, "done"},
		{"control chars dropped", []byte("a\x01b\tc\r\n"), "ab\tc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, peer := pipeConn(t)
			go func() {
				_, _ = peer.Write(tc.wire)
			}()
			line, err := conn.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, tc.want, line)
		})
	}
}

func TestConn_WriteLineAppendsCRLF(t *testing.T) {
	conn, peer := pipeConn(t)
	go func() {
		_ = conn.WriteLine("ahoy")
	}()
	buf := make([]byte, 16)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ahoy\r\n", string(buf[:n]))
}

func TestConn_WritePromptHasNoTerminator(t *testing.T) {
	conn, peer := pipeConn(t)
	go func() {
		_ = conn.WritePrompt("> ")
	}()
	buf := make([]byte, 8)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "> ", string(buf[:n]))
}

func TestConn_NegotiateSuppressesGoAhead(t *testing.T) {
	conn, peer := pipeConn(t)
	go func() {
		_ = conn.Negotiate()
	}()
	buf := make([]byte, 8)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{IAC, WILL, OptSuppressGoAhead}, buf[:n])
}

func TestConn_ReadPasswordTogglesEcho(t *testing.T) {
	conn, peer := pipeConn(t)

	got := make(chan string, 1)
	go func() {
		line, err := conn.ReadPassword()
		if err != nil {
			got <- "error: " + err.Error()
			return
		}
		got <- line
	}()

	buf := make([]byte, 3)
	_, err := peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{IAC, WILL, OptEcho}, buf)

	_, err = peer.Write([]byte("hunter2\r\n"))
	require.NoError(t, err)

	// Echo restored, then a blank line to advance the cursor.
	_, err = peer.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{IAC, WONT, OptEcho}, buf)
	crlf := make([]byte, 2)
	_, err = peer.Read(crlf)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", string(crlf))

	assert.Equal(t, "hunter2", <-got)
}
