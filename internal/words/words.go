// internal/words/words.go
//
// Root-word sources for the round engine.
//
// Responsibilities:
//   - Load a start-word list from a file or fall back to the embedded default.
//   - RandomSource: pick a root word uniformly at random.
//   - DailySource (daily.go): pick the same root word for everyone on a given date.
//
// Word lists:
//   - One word per line, trimmed and lowercased with the case rules of the
//     configured language, so list entries match what the engine sees.
//   - Blank lines and lines starting with '#' are ignored.
//   - Only alphabetic words are kept.
//
// Environment variables (read by config, passed to Load):
//   START_WORDS_FILE=/path/to/start.txt

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrEmptyList is returned when a list has no usable words.
var ErrEmptyList = errors.New("words: list is empty")

// Load reads a word list from path, or the embedded start words when path is
// empty, normalized for lang.
func Load(path, lang string) ([]string, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.StartWords()
	} else {
		list, err = ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	list = Normalize(list, lang)
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return out, nil
}

// Normalize lowercases (per lang) and trims every entry, dropping blanks,
// comments, non-alphabetic entries and duplicates. Order is preserved.
func Normalize(list []string, lang string) []string {
	lower := caser(lang)
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, line := range list {
		w := lower.String(strings.TrimSpace(line))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Lower lowercases s with the case rules of lang ("tr" maps I to ı).
func Lower(lang, s string) string {
	return caser(lang).String(s)
}

// caser builds a lowercaser for lang. Casers are stateful, so each caller
// gets its own. Unparseable tags fall back to root case rules.
func caser(lang string) cases.Caser {
	return cases.Lower(language.Make(lang))
}

// isAlpha reports whether s consists only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RandomSource picks root words uniformly from a fixed list.
type RandomSource struct {
	words []string
	intn  func(n int) int
}

// NewRandomSource builds a source over list. intn returns a value in [0, n);
// nil uses crypto/rand.
func NewRandomSource(list []string, intn func(n int) int) *RandomSource {
	if intn == nil {
		intn = cryptoIntn
	}
	return &RandomSource{words: append([]string(nil), list...), intn: intn}
}

// PickRootWord returns a random word, or ok=false when the list is empty.
func (s *RandomSource) PickRootWord() (string, bool) {
	if len(s.words) == 0 {
		return "", false
	}
	return s.words[s.intn(len(s.words))], true
}

// Len reports how many words the source can pick from.
func (s *RandomSource) Len() int { return len(s.words) }

func cryptoIntn(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
