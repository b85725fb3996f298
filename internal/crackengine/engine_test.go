package crackengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbur/crackserver/internal/cryptengine"
	"github.com/arbur/crackserver/internal/dictionary"
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

func TestRunFindsMatchAnyWorkerCount(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	cipher, err := cryptengine.Hash("hello", "ab")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{1, 2, 3, 4, 50} {
		res := Run(cipher, "ab", n, dict)
		if !res.Found || res.Word != "hello" {
			t.Errorf("N=%d: Run = %+v, want Found=true Word=hello", n, res)
		}
	}
}

func TestRunFailsForAbsentWord(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	cipher, err := cryptengine.Hash("nope", "ab")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{1, 2} {
		res := Run(cipher, "ab", n, dict)
		if res.Found {
			t.Errorf("N=%d: Run = %+v, want Found=false", n, res)
		}
	}
}

func TestRunCountsEveryCall(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	cipher, err := cryptengine.Hash("nope", "ab")
	if err != nil {
		t.Fatal(err)
	}
	res := Run(cipher, "ab", 1, dict)
	if res.CryptCalls != uint32(dict.Len()) {
		t.Fatalf("CryptCalls = %d, want %d (no early stop on total miss)", res.CryptCalls, dict.Len())
	}
}

func TestPartitionCoversEveryIndexExactlyOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{10, 3}, {1, 1}, {7, 7}, {5, 2}, {100, 9},
	} {
		ranges := partition(tc.n, tc.workers)
		seen := make([]bool, tc.n)
		for _, r := range ranges {
			for i := r.start; i < r.end; i++ {
				if seen[i] {
					t.Fatalf("n=%d workers=%d: index %d covered twice", tc.n, tc.workers, i)
				}
				seen[i] = true
			}
		}
		for i, ok := range seen {
			if !ok {
				t.Fatalf("n=%d workers=%d: index %d never covered", tc.n, tc.workers, i)
			}
		}
	}
}

func TestRunWithMoreWorkersThanWordsSearchesWholeDictionary(t *testing.T) {
	dict := makeDict(t, []string{"hello", "world", "abc"})
	cipher, _ := cryptengine.Hash("abc", "ab")
	// Requesting more workers than words falls back to a single worker,
	// which must still search the whole dictionary exactly once per word,
	// not skip any: the match is the last word, found on the third call.
	res := Run(cipher, "ab", 10, dict)
	if !res.Found || res.Word != "abc" {
		t.Fatalf("Run = %+v, want Found=true Word=abc when requested workers exceed dictionary size", res)
	}
	if res.CryptCalls != uint32(dict.Len()) {
		t.Fatalf("CryptCalls = %d, want %d (each word tested once)", res.CryptCalls, dict.Len())
	}
}
