// Package advice holds the static fix-hint and explanation texts for
// every diagnostic code, plus per-keyword purpose and standard-section
// lookups used to compose context-aware hints.
package advice

import (
	"fmt"
	"strings"
)

type Entry struct {
	Fix     string `json:"fix"`
	Explain string `json:"explain"`
}

type Store struct {
	entries map[int]Entry
}

func (s *Store) Lookup(code int) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[code]
	return e, ok
}

func (s *Store) IsEmpty() bool {
	return s == nil || len(s.entries) == 0
}

// Merge overlays another store on top of this one, replacing any
// existing codes. Used to apply site-specific wording from a JSON file.
func (s *Store) Merge(over *Store) {
	if over == nil {
		return
	}
	for code, e := range over.entries {
		s.entries[code] = e
	}
}

type JSONFile struct {
	Entries []JSONEntry `json:"entries"`
}

type JSONEntry struct {
	Code    int    `json:"code"`
	Fix     string `json:"fix,omitempty"`
	Explain string `json:"explain,omitempty"`
}

func FromJSON(file JSONFile) (map[int]Entry, error) {
	out := make(map[int]Entry)
	for i, entry := range file.Entries {
		if entry.Code <= 0 {
			return nil, fmt.Errorf("entries[%d]: code must be positive", i)
		}
		if _, exists := out[entry.Code]; exists {
			return nil, fmt.Errorf("entries[%d]: duplicate code %d", i, entry.Code)
		}
		out[entry.Code] = Entry{
			Fix:     strings.TrimSpace(entry.Fix),
			Explain: strings.TrimSpace(entry.Explain),
		}
	}
	return out, nil
}
