// Package clientconfig parses crackclient's command line: a positional
// port number and an optional job file, exactly as the original client
// took them (no long-flag grammar, since the wire dialogue is the only
// thing this client really configures).
package clientconfig

import "fmt"

// ExitStatus mirrors the client's original exit codes.
type ExitStatus int

const (
	OK ExitStatus = iota
	UsageError
	JobFileError
	ConnectionError
	ConnectionTerminated
)

// UsageMessage is the fixed usage string for any argument-count error.
const UsageMessage = "Usage: crackclient portnum [jobfile]"

// Config holds a validated client invocation.
type Config struct {
	Port    string
	JobFile string
}

// Parse validates args (excluding argv[0]). It accepts 1 or 2
// positional arguments: portnum, and optionally a job file name. It
// does not check that the job file can be opened; callers own that
// check so they can produce the exact "unable to open job file"
// message with the file's own path.
func Parse(args []string) (Config, ExitStatus, error) {
	if len(args) < 1 || len(args) > 2 {
		return Config{}, UsageError, fmt.Errorf("%s", UsageMessage)
	}
	cfg := Config{Port: args[0]}
	if len(args) == 2 {
		cfg.JobFile = args[1]
	}
	return cfg, OK, nil
}

// JobFileErrorMessage formats the message used when the job file cannot
// be opened.
func JobFileErrorMessage(path string) string {
	return fmt.Sprintf("crackclient: unable to open job file %q", path)
}

// ConnectionErrorMessage formats the message used when the client
// cannot connect to the server.
func ConnectionErrorMessage(port string) string {
	return fmt.Sprintf("crackclient: unable to connect to port %s", port)
}

// TerminatedMessage is printed when the server closes the connection
// mid-dialogue.
const TerminatedMessage = "crackclient: server connection terminated"
