// Package crackclient implements the client side of the line protocol:
// reading commands from a job file or stdin, sending them to a
// connected server one at a time, and translating the server's
// responses into the user-facing messages the original client printed.
package crackclient

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/minio/sha256-simd"

	"github.com/arbur/crackserver/internal/logging"
)

// Sentinel responses recognized on the wire, mirrored from
// internal/protocol so this package doesn't need to import it.
const (
	serverInvalid = ":invalid"
	serverFailed  = ":failed"

	invalidMessage = "Error in command"
	failedMessage  = "Unable to decrypt"
)

// ErrTerminated is returned by Run when the server closes the
// connection before a response to a sent command arrives.
var ErrTerminated = fmt.Errorf("server connection terminated")

// Run reads commands from src line by line, skipping blank lines and
// lines beginning with '#', sends each surviving line to conn followed
// by a newline, and reads back exactly one response line per command,
// writing the user-facing translation to out. jobFileContents, if
// non-nil, is checksummed and logged at trace level for support
// diagnostics; pass nil when reading from stdin.
func Run(conn io.ReadWriter, src io.Reader, out io.Writer, jobFileContents []byte) error {
	if jobFileContents != nil {
		sum := sha256.Sum256(jobFileContents)
		logging.Log.Tracef("job file checksum: %x", sum)
	}

	scanner := bufio.NewScanner(src)
	reader := bufio.NewReader(conn)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			return err
		}

		resp, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return ErrTerminated
			}
			return err
		}
		resp = strings.TrimRight(resp, "\r\n")
		fmt.Fprintln(out, translate(resp))
	}
	return scanner.Err()
}

// translate maps the wire sentinels to their user-facing messages and
// passes every other response through unchanged.
func translate(resp string) string {
	switch resp {
	case serverInvalid:
		return invalidMessage
	case serverFailed:
		return failedMessage
	default:
		return resp
	}
}
