// internal/round/engine.go
//
// Round engine for a single Word Scramble round.
// Responsibilities:
//   - Start (or restart) a round from a pluggable word source.
//   - Validate submissions in a fixed order: length/identity, originality,
//     derivability from the root word, real-word check via the oracle.
//   - Score accepted words by length plus a bonus for words already found.
//   - Notify observers after every completed operation.
//
// Notes:
//   - Rejections are ordinary Results, not errors; they never mutate state.
//   - All methods serialize on one mutex, so a round is driven one event at a time.
package round

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRootWord is used whenever the word source has nothing to offer.
const DefaultRootWord = "silkworm"

// DefaultLanguage is the oracle language when none is configured.
const DefaultLanguage = "en"

var (
	ErrNilSource = errors.New("round: nil word source")
	ErrNilOracle = errors.New("round: nil oracle")
)

// Options tunes an Engine. The zero value uses DefaultLanguage and no observer.
type Options struct {
	Language string
	Observer Observer
}

// Engine owns one round and is the only writer of its state.
type Engine struct {
	source   WordSource
	oracle   Oracle
	observer Observer
	lang     string
	lower    cases.Caser

	mu    sync.Mutex
	root  string
	words []string
	score int
}

// New builds an engine around its collaborators. The round is empty until Start is called.
func New(src WordSource, oracle Oracle, opts Options) (*Engine, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("round: language %q: %w", lang, err)
	}
	return &Engine{
		source:   src,
		oracle:   oracle,
		observer: opts.Observer,
		lang:     lang,
		lower:    cases.Lower(tag),
		words:    []string{},
	}, nil
}

// Language reports the language passed to the oracle.
func (e *Engine) Language() string { return e.lang }

// Start replaces the current round with a fresh one: new root word,
// no accepted words, zero score. It cannot fail.
func (e *Engine) Start() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	root := DefaultRootWord
	if w, ok := e.source.PickRootWord(); ok {
		if w = e.normalize(w); w != "" {
			root = w
		}
	}

	e.root, e.words, e.score = root, []string{}, 0

	snap := e.snapshot()
	e.notify(Event{Type: EvtStarted, Round: snap})
	return snap
}

// Submit validates raw input against the round and, when every check passes,
// records the word and adds its points to the score.
func (e *Engine) Submit(raw string) Result {
	res, _ := e.SubmitSnapshot(raw)
	return res
}

// SubmitSnapshot is Submit plus the round as it stands right after this
// submission, taken under the same lock.
func (e *Engine) SubmitSnapshot(raw string) (Result, Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate := e.normalize(raw)
	reason := e.check(candidate)
	if reason != ReasonNone {
		snap := e.snapshot()
		e.notify(Event{
			Type:    EvtRejected,
			Round:   snap,
			Word:    candidate,
			Reason:  reason,
			Title:   reason.Title(),
			Message: reason.Message(e.root),
		})
		return Result{Reason: reason}, snap
	}

	points := basePoints(utf8.RuneCountInString(candidate)) + bonusPoints(len(e.words))
	e.score += points
	e.words = slices.Insert(e.words, 0, candidate)

	snap := e.snapshot()
	e.notify(Event{Type: EvtAccepted, Round: snap, Word: candidate, Points: points})
	return Result{Points: points}, snap
}

// Snapshot returns a copy of the current round.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// check runs the validation chain; the first failure wins.
func (e *Engine) check(candidate string) Reason {
	if !(utf8.RuneCountInString(candidate) > 3 && candidate != e.root) {
		return ReasonTooShortOrSameAsRoot
	}
	if slices.Contains(e.words, candidate) {
		return ReasonAlreadyUsed
	}
	if !derivable(candidate, e.root) {
		return ReasonNotDerivable
	}
	if !e.oracle.IsRealWord(candidate, e.lang) {
		return ReasonNotRecognized
	}
	return ReasonNone
}

func (e *Engine) normalize(s string) string {
	return e.lower.String(strings.TrimSpace(s))
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{RootWord: e.root, Words: slices.Clone(e.words), Score: e.score}
}

func (e *Engine) notify(ev Event) {
	if e.observer != nil {
		e.observer.Notify(ev)
	}
}

// derivable reports whether every letter of word can be taken from root,
// each letter of root used at most once.
func derivable(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := slices.Index(pool, r)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

// basePoints scores a word by its length: 8 letters → 5, 6..7 → 2, anything else → 1.
func basePoints(n int) int {
	switch {
	case n == 8:
		return 5
	case n >= 6 && n < 8:
		return 2
	default:
		return 1
	}
}

// bonusPoints rewards streaks by how many words were already accepted.
func bonusPoints(found int) int {
	switch {
	case found < 3:
		return 0
	case found < 5:
		return 2
	default:
		return 5
	}
}
