// Package protocol implements the line-oriented request/response grammar
// spoken between crackclient and crackserver: parsing, validation, and
// dispatch to the crack engine or the hash primitive.
package protocol

import (
	"strconv"
	"strings"

	"github.com/arbur/crackserver/internal/crackengine"
	"github.com/arbur/crackserver/internal/cryptengine"
	"github.com/arbur/crackserver/internal/dictionary"
	"github.com/arbur/crackserver/internal/stats"
)

// Sentinel responses. A successful crypt/crack response can never equal
// either sentinel: ':' is outside the salt alphabet, so no cipher begins
// with it.
const (
	Invalid = ":invalid"
	Failed  = ":failed"
)

const maxFields = 3

// Outcome carries everything a session needs to know about how a command
// was handled, beyond the literal response line, so the caller can decide
// what (if anything) to log.
type Outcome struct {
	Response string
	Command  string // "crack", "crypt", or "" for anything else
}

// Dispatch parses and executes a single command line (without its
// trailing newline) against dict and stats, returning the response line
// (also without a trailing newline) to write back to the client.
func Dispatch(line string, dict *dictionary.Dictionary, reg *stats.Registry) Outcome {
	fields := strings.SplitN(line, " ", maxFields)
	if len(fields) == 0 || fields[0] == "" {
		return Outcome{Response: Invalid}
	}

	switch fields[0] {
	case "crack":
		return Outcome{Command: "crack", Response: dispatchCrack(fields, dict, reg)}
	case "crypt":
		return Outcome{Command: "crypt", Response: dispatchCrypt(fields, reg)}
	default:
		return Outcome{Response: Invalid}
	}
}

func dispatchCrack(fields []string, dict *dictionary.Dictionary, reg *stats.Registry) string {
	reg.OnCrackRequest()

	if len(fields) != 3 {
		reg.OnCrackFail()
		return Invalid
	}
	cipher, nStr := fields[1], fields[2]

	if len(cipher) != cryptengine.CipherLength {
		reg.OnCrackFail()
		return Invalid
	}
	if !cryptengine.ValidSaltChar(cipher[0]) || !cryptengine.ValidSaltChar(cipher[1]) {
		reg.OnCrackFail()
		return Invalid
	}
	n, ok := parseWorkerCount(nStr)
	if !ok {
		reg.OnCrackFail()
		return Invalid
	}

	salt := cipher[:cryptengine.SaltLength]
	result := crackengine.Run(cipher, salt, n, dict)
	reg.AddCryptCalls(result.CryptCalls)
	if !result.Found {
		reg.OnCrackFail()
		return Failed
	}
	reg.OnCrackSuccess()
	return result.Word
}

// parseWorkerCount validates the wire-format worker count: decimal,
// at most two digits, and in [MinWorkers, MaxWorkers].
func parseWorkerCount(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < crackengine.MinWorkers || n > crackengine.MaxWorkers {
		return 0, false
	}
	return n, true
}

func dispatchCrypt(fields []string, reg *stats.Registry) string {
	reg.OnCryptRequest()

	if len(fields) != 3 {
		return Invalid
	}
	text, salt := fields[1], fields[2]
	if !cryptengine.ValidSalt(salt) {
		return Invalid
	}
	cipher, err := cryptengine.Hash(text, salt)
	if err != nil {
		return Invalid
	}
	reg.AddCryptCalls(1)
	return cipher
}
