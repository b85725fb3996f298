// Package crackengine implements the parallel dictionary search behind
// the crack command: partition the dictionary across a bounded worker
// pool, race the workers against a shared early-stop flag, and report
// back the first match found along with the total number of hash
// invocations performed.
package crackengine

import (
	"sync"
	"sync/atomic"

	"github.com/arbur/crackserver/internal/cryptengine"
	"github.com/arbur/crackserver/internal/dictionary"
)

// MinWorkers and MaxWorkers bound the requested worker count accepted
// from the wire protocol.
const (
	MinWorkers = 1
	MaxWorkers = 50
)

// Result is the outcome of a crack request.
type Result struct {
	// Word is the matching plaintext, or "" if none was found.
	Word string
	// Found reports whether a match was found.
	Found bool
	// CryptCalls is the total number of hash-primitive invocations
	// performed across every worker, including the one that matched.
	CryptCalls uint32
}

// Run partitions dict across the effective worker count derived from
// requested (per 4.3: W = 1 when requested == 1 or requested exceeds the
// dictionary size, otherwise W = requested) and searches for a word
// whose hash under salt equals cipher. Run blocks until every worker has
// finished or exited early via the shared stop flag.
func Run(cipher, salt string, requested int, dict *dictionary.Dictionary) Result {
	n := dict.Len()
	workers := requested
	if requested == 1 || requested > n {
		workers = 1
	}

	ranges := partition(n, workers)

	var found int32
	var mu sync.Mutex
	var winner string
	var winnerFound bool
	var totalCalls uint32

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for _, rg := range ranges {
		rg := rg
		go func() {
			defer wg.Done()
			word, calls := search(cipher, salt, dict, rg.start, rg.end, &found)
			atomic.AddUint32(&totalCalls, calls)
			if word != "" {
				mu.Lock()
				if !winnerFound {
					winner = word
					winnerFound = true
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return Result{Word: winner, Found: winnerFound, CryptCalls: totalCalls}
}

type wordRange struct {
	start, end int
}

// partition splits [0, n) into `workers` contiguous ranges, the way the
// reference design does: inc = n / workers, worker i gets
// [i*inc, (i+1)*inc), and the last worker's end is forced to n so any
// remainder is covered.
func partition(n, workers int) []wordRange {
	if workers <= 1 {
		return []wordRange{{0, n}}
	}
	inc := n / workers
	ranges := make([]wordRange, workers)
	start := 0
	for i := 0; i < workers; i++ {
		end := start + inc
		if i == workers-1 {
			end = n
		}
		ranges[i] = wordRange{start, end}
		start = end
	}
	return ranges
}

// search tests dict[start:end] against cipher under salt, stopping early
// if stopFlag becomes nonzero (set by this or any sibling worker). It
// returns the matching word (or "" if none) and the number of hash calls
// it performed, which always includes the call that found the match.
func search(cipher, salt string, dict *dictionary.Dictionary, start, end int, stopFlag *int32) (string, uint32) {
	var calls uint32
	for i := start; i < end; i++ {
		if atomic.LoadInt32(stopFlag) != 0 {
			break
		}
		word := dict.Word(i)
		hash, err := cryptengine.Hash(word, salt)
		calls++
		if err != nil {
			continue
		}
		if hash == cipher {
			atomic.StoreInt32(stopFlag, 1)
			return word, calls
		}
	}
	return "", calls
}
