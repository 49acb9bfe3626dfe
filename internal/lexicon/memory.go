// Package lexicon provides the spell-check oracles consulted by the round
// engine: an in-memory word set and a SQLite-backed word table.
package lexicon

import (
	"sync"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Memory is a per-language word set held in memory.
type Memory struct {
	mu    sync.RWMutex
	langs map[string]map[string]struct{}
}

// NewMemory returns an empty lexicon.
func NewMemory() *Memory {
	return &Memory{langs: make(map[string]map[string]struct{})}
}

// ReadList returns the dictionary words in path, or the embedded dictionary
// when path is empty.
func ReadList(path string) ([]string, error) {
	if path == "" {
		return assets.Dictionary()
	}
	return words.ReadFile(path)
}

// LoadMemory builds a lexicon for language from ReadList(path).
func LoadMemory(language, path string) (*Memory, error) {
	list, err := ReadList(path)
	if err != nil {
		return nil, err
	}
	m := NewMemory()
	m.Add(language, list...)
	return m, nil
}

// Add registers words for language after normalizing them.
func (m *Memory) Add(language string, list ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.langs[language]
	if !ok {
		set = make(map[string]struct{}, len(list))
		m.langs[language] = set
	}
	for _, w := range words.Normalize(list, language) {
		set[w] = struct{}{}
	}
}

// IsRealWord reports whether word is known in language.
func (m *Memory) IsRealWord(word, language string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.langs[language][words.Lower(language, word)]
	return ok
}

// Len reports how many words are known in language.
func (m *Memory) Len(language string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.langs[language])
}
