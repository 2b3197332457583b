// Package wordlist provides the fixed practice dictionary.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed words.txt
var dictionaryText string

var (
	dictOnce  sync.Once
	dictWords []string
	dictErr   error
)

// Dictionary returns the embedded word list. The returned slice is a copy.
func Dictionary() ([]string, error) {
	dictOnce.Do(func() {
		dictWords, dictErr = ParseWords(strings.NewReader(dictionaryText))
	})
	if dictErr != nil {
		return nil, dictErr
	}
	out := make([]string, len(dictWords))
	copy(out, dictWords)
	return out, nil
}

// ParseWords reads one word per line, dropping blanks, duplicates and words
// the filter rejects.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !Keep(line) {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
