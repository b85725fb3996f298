package protocol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbur/crackserver/internal/cryptengine"
	"github.com/arbur/crackserver/internal/dictionary"
	"github.com/arbur/crackserver/internal/stats"
)

func makeDict(t *testing.T, words []string) *dictionary.Dictionary {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "words")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range words {
		f.WriteString(w + "\n")
	}
	f.Close()
	d, err := dictionary.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestCryptRoundTrip(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	reg := stats.New(nil)

	out := Dispatch("crypt hello ab", dict, reg)
	want, err := cryptengine.Hash("hello", "ab")
	if err != nil {
		t.Fatal(err)
	}
	if out.Response != want {
		t.Fatalf("crypt response = %q, want %q", out.Response, want)
	}

	crackOut := Dispatch("crack "+want+" 1", dict, reg)
	if crackOut.Response != "hello" {
		t.Fatalf("crack response = %q, want hello", crackOut.Response)
	}
}

func TestCrackFailsForAbsentWord(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	reg := stats.New(nil)
	cipher, _ := cryptengine.Hash("nope", "ab")
	out := Dispatch("crack "+cipher+" 2", dict, reg)
	if out.Response != Failed {
		t.Fatalf("crack response = %q, want %q", out.Response, Failed)
	}
}

func TestInvalidSalt(t *testing.T) {
	dict := makeDict(t, []string{"hello"})
	reg := stats.New(nil)
	out := Dispatch("crypt hello !!", dict, reg)
	if out.Response != Invalid {
		t.Fatalf("response = %q, want %q", out.Response, Invalid)
	}
}

func TestInvalidCipherLength(t *testing.T) {
	dict := makeDict(t, []string{"hello"})
	reg := stats.New(nil)
	out := Dispatch("crack abcdefghij 1", dict, reg)
	if out.Response != Invalid {
		t.Fatalf("response = %q, want %q", out.Response, Invalid)
	}
}

func TestUnknownCommand(t *testing.T) {
	dict := makeDict(t, []string{"hello"})
	reg := stats.New(nil)
	out := Dispatch("frobnicate a b", dict, reg)
	if out.Response != Invalid {
		t.Fatalf("response = %q, want %q", out.Response, Invalid)
	}
}

func TestCrackWorkerCountBounds(t *testing.T) {
	dict := makeDict(t, []string{"hello"})
	reg := stats.New(nil)
	cipher, _ := cryptengine.Hash("hello", "ab")
	for _, n := range []string{"0", "51", "100", "abc", ""} {
		out := Dispatch("crack "+cipher+" "+n, dict, reg)
		if out.Response != Invalid {
			t.Errorf("N=%q: response = %q, want %q", n, out.Response, Invalid)
		}
	}
}

func TestCrackAndCryptRequestAccounting(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	reg := stats.New(nil)

	Dispatch("crypt hello ab", dict, reg)
	cipher, _ := cryptengine.Hash("nope", "ab")
	Dispatch("crack "+cipher+" 2", dict, reg)
	Dispatch("crack not-13-chars 1", dict, reg) // invalid, still counted

	snap := reg.Snapshot()
	if snap.Crypts != 1 {
		t.Fatalf("Crypts = %d, want 1", snap.Crypts)
	}
	if snap.Cracks != 2 {
		t.Fatalf("Cracks = %d, want 2", snap.Cracks)
	}
	if snap.SuccessCracks+snap.FailedCracks != snap.Cracks {
		t.Fatalf("successCracks(%d)+failedCracks(%d) != cracks(%d)",
			snap.SuccessCracks, snap.FailedCracks, snap.Cracks)
	}
}
