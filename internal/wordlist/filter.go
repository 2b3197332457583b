// Package wordlist provides the fixed practice dictionary.
package wordlist

// Keep reports whether a word is usable for practice: non-empty lowercase
// ASCII letters only, so every letter is reachable from the allowed key set.
func Keep(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
