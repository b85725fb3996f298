// Package dictionary loads the immutable word list the crack engine
// searches against.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
)

// MaxWordLength is the longest plaintext word the server will ever test;
// longer lines in the dictionary file are silently dropped.
const MaxWordLength = 8

// Dictionary is an ordered, immutable set of candidate plaintext words.
// A Dictionary is safe for concurrent read access by any number of
// sessions once returned by Load; nothing ever mutates it afterward.
type Dictionary struct {
	words []string
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word at index i.
func (d *Dictionary) Word(i int) string {
	return d.words[i]
}

// Words returns the underlying slice. Callers must not mutate it.
func (d *Dictionary) Words() []string {
	return d.words
}

// ErrEmpty is returned by Load when the dictionary file contains no word
// of acceptable length.
var ErrEmpty = fmt.Errorf("dictionary: no plain text words to test")

// Load reads path line by line, keeping every non-empty line of length at
// most MaxWordLength as a candidate word. Duplicate words are kept as-is;
// the caller relies on predictable crypt-call accounting, not on a unique
// word set. Load fails if the file cannot be opened or if it yields zero
// usable words.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: unable to open dictionary file %q: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || len(line) > MaxWordLength {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: unable to open dictionary file %q: %w", path, err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return &Dictionary{words: words}, nil
}
