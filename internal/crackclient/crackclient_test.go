package crackclient

import (
	"bytes"
	"net"
	"strings"
	"testing"
)

func TestRunTranslatesSentinelResponses(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		r := make([]byte, 256)
		n, _ := serverConn.Read(r)
		_ = n
		serverConn.Write([]byte(":invalid\n"))
		n, _ = serverConn.Read(r)
		serverConn.Write([]byte(":failed\n"))
		n, _ = serverConn.Read(r)
		_ = n
		serverConn.Write([]byte("hello\n"))
		serverConn.Close()
	}()

	src := strings.NewReader("crack bad 1\n# a comment\n\ncrack good 1\ncrypt hello ab\n")
	var out bytes.Buffer
	err := Run(clientConn, src, &out, []byte("word\n"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	got := out.String()
	want := "Error in command\nUnable to decrypt\nhello\n"
	if got != want {
		t.Fatalf("out = %q, want %q", got, want)
	}
}

func TestRunReturnsTerminatedOnServerEOF(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		buf := make([]byte, 256)
		serverConn.Read(buf)
		serverConn.Close()
	}()

	src := strings.NewReader("crack bad 1\n")
	var out bytes.Buffer
	err := Run(clientConn, src, &out, nil)
	if err != ErrTerminated {
		t.Fatalf("Run error = %v, want ErrTerminated", err)
	}
}
