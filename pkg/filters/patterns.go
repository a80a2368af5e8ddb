package filters

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// PatternSet holds the forbidden-instruction patterns. Matching is
// case-insensitive; a pattern is either a plain substring or a glob
// where '*' matches any run of characters.
//
// The set is safe for concurrent use: Replace swaps the whole pattern
// list atomically, which is how hot reload applies a changed file.
type PatternSet struct {
	mu       sync.RWMutex
	patterns []string
}

// NewPatternSet creates a pattern set from an initial pattern list.
func NewPatternSet(patterns []string) *PatternSet {
	ps := &PatternSet{}
	ps.Replace(patterns)
	return ps
}

// Replace swaps the pattern list. Patterns are lowercased once here so
// Match never re-folds them.
func (ps *PatternSet) Replace(patterns []string) {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(p))
	}

	ps.mu.Lock()
	ps.patterns = lowered
	ps.mu.Unlock()
}

// Len returns the number of active patterns.
func (ps *PatternSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.patterns)
}

// Match reports the first pattern that matches anywhere in the text,
// case-insensitively.
func (ps *PatternSet) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)

	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, p := range ps.patterns {
		if matchPattern(lowered, p) {
			return p, true
		}
	}
	return "", false
}

// matchPattern reports whether pattern occurs in text. Both arguments
// are already lowercase. A pattern without '*' is a substring test; one
// with '*' matches its literal segments in order, anywhere in the text.
func matchPattern(text, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return strings.Contains(text, pattern)
	}

	pos := 0
	for _, seg := range strings.Split(pattern, "*") {
		if seg == "" {
			continue
		}
		idx := strings.Index(text[pos:], seg)
		if idx < 0 {
			return false
		}
		pos += idx + len(seg)
	}
	return true
}

// LoadPatternsFile reads a pattern file: one pattern per line, blank
// lines and '#' comments ignored.
func LoadPatternsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patterns file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}
	return patterns, nil
}
