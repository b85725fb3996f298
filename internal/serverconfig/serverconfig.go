// Package serverconfig parses and validates crackserver's command-line
// arguments. Flag parsing is layered the way a Decred daemon config
// package does it: jessevdk/go-flags defines the option set, spf13/viper
// always folds in CRACKSERVER_-prefixed environment variables and, when
// given, an optional config file, and a manual pre-scan rejects a flag
// repeated on the command line before go-flags ever sees it, preserving
// the duplicate-flag usage error the original getopt-style parser
// produced. The four layers resolve in order: an explicit command-line
// flag always wins, then an environment variable, then the config file,
// then the built-in default.
package serverconfig

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/spf13/viper"
)

// ExitStatus mirrors the exit codes the original server process used,
// so main can os.Exit with the right value.
type ExitStatus int

const (
	OK ExitStatus = iota
	UsageError
	DictFileError
	NoWordsError
	UnableOpenError
)

const (
	minPort = 1024
	maxPort = 65535

	// DefaultDictionary is used when --dictionary is not given.
	DefaultDictionary = "/usr/share/dict/words"

	usageMessage = "Usage: crackserver [--maxconn connections] [--port portnum] [--dictionary filename]"
)

// Config holds a fully validated set of server parameters.
type Config struct {
	MaxConn    int    `long:"maxconn" description:"maximum number of simultaneous client connections (0 = unlimited)" default:"0"`
	Port       int    `long:"port" description:"TCP port to listen on (0 = ephemeral)" default:"0"`
	Dictionary string `long:"dictionary" description:"dictionary file of plain text words" default:"/usr/share/dict/words"`
	ConfigFile string `long:"config" description:"optional config file (YAML/JSON/TOML) overlaying these flags"`
	LogFile    string `long:"logfile" description:"optional file to additionally write log output to"`
	DebugLevel string `long:"debuglevel" description:"logging level: trace, debug, info, warn, error, critical" default:"info"`
	AdminAddr  string `long:"adminaddr" description:"address to serve the admin HTTP/metrics surface on (empty disables it)"`
}

// Usage reports the fixed usage string printed on any command-line
// error, matching the original single usage message used for every
// parse failure.
func Usage() string {
	return usageMessage
}

// Parse validates args (excluding argv[0]) and returns a Config. The
// returned ExitStatus is OK only when err is nil; callers should print
// err's message (already formatted to match the original diagnostics)
// to stderr and exit with the given status otherwise.
func Parse(args []string) (Config, ExitStatus, error) {
	if dup := firstDuplicateFlag(args); dup != "" {
		return Config{}, UsageError, fmt.Errorf("%s", usageMessage)
	}

	var cfg Config
	parser := flags.NewParser(&cfg, flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, UsageError, fmt.Errorf("%s", usageMessage)
	}

	v := viper.New()
	v.SetEnvPrefix("CRACKSERVER")
	v.AutomaticEnv()
	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, UsageError, fmt.Errorf("%s", usageMessage)
		}
	}
	applyViperOverlay(&cfg, v, explicitLongFlags(args))

	if err := validatePort(cfg.Port); err != nil {
		return Config{}, UsageError, err
	}
	if cfg.MaxConn < 0 {
		return Config{}, UsageError, fmt.Errorf("%s", usageMessage)
	}
	if cfg.Dictionary == "" {
		cfg.Dictionary = DefaultDictionary
	}

	return cfg, OK, nil
}

// applyViperOverlay copies any key viper resolved (from CRACKSERVER_*
// environment variables, or from the config file) over the flag
// defaults, skipping any field the caller passed explicitly on the
// command line — the command line has already won for those.
func applyViperOverlay(cfg *Config, v *viper.Viper, explicit map[string]bool) {
	if !explicit["maxconn"] && v.IsSet("maxconn") {
		cfg.MaxConn = v.GetInt("maxconn")
	}
	if !explicit["port"] && v.IsSet("port") {
		cfg.Port = v.GetInt("port")
	}
	if !explicit["dictionary"] && v.IsSet("dictionary") {
		cfg.Dictionary = v.GetString("dictionary")
	}
	if !explicit["logfile"] && v.IsSet("logfile") {
		cfg.LogFile = v.GetString("logfile")
	}
	if !explicit["debuglevel"] && v.IsSet("debuglevel") {
		cfg.DebugLevel = v.GetString("debuglevel")
	}
	if !explicit["adminaddr"] && v.IsSet("adminaddr") {
		cfg.AdminAddr = v.GetString("adminaddr")
	}
}

func validatePort(port int) error {
	if port == 0 {
		return nil
	}
	if port < minPort || port > maxPort {
		return fmt.Errorf("%s", usageMessage)
	}
	return nil
}

// firstDuplicateFlag scans raw args for a long flag given more than
// once, the way the original parser rejected a repeated --maxconn,
// --port, or --dictionary before go-flags' last-one-wins semantics
// would silently accept it.
func firstDuplicateFlag(args []string) string {
	seen := make(map[string]bool)
	tracked := map[string]bool{"--maxconn": true, "--port": true, "--dictionary": true}
	for _, a := range args {
		name, _, _ := strings.Cut(a, "=")
		if !tracked[name] {
			continue
		}
		if seen[name] {
			return name
		}
		seen[name] = true
	}
	return ""
}

// explicitLongFlags scans raw args for the bare viper keys of every
// long flag actually given on the command line, so applyViperOverlay
// can tell "explicitly set to the zero value" apart from "left at the
// go-flags default" and let the command line win either way.
func explicitLongFlags(args []string) map[string]bool {
	explicit := make(map[string]bool)
	for _, a := range args {
		name, _, _ := strings.Cut(a, "=")
		name = strings.TrimPrefix(name, "--")
		explicit[name] = true
	}
	return explicit
}

// DictionaryErrorMessage formats the message used when the dictionary
// file cannot be opened.
func DictionaryErrorMessage(path string) string {
	return fmt.Sprintf("crackserver: unable to open dictionary file %q", path)
}

// NoWordsErrorMessage is the fixed message used when a dictionary opens
// but contains no usable words.
const NoWordsErrorMessage = "crackserver: no plain text words to test"

// UnableListenErrorMessage is the fixed message used when the listening
// socket cannot be opened.
const UnableListenErrorMessage = "crackserver: unable to open socket for listening"
