// internal/round/types.go
//
// Core type definitions for the Word Scramble round engine.
// Defines:
//   - Snapshot: read-only copy of a round (root word, accepted words, score).
//   - Reason:   why a submission was rejected, with its alert title/message.
//   - Result:   outcome of a single submission.
//   - Event:    notification emitted after every start/submit.
//   - WordSource / Oracle: the two external collaborators.

package round

import "fmt"

// Snapshot is a copy of the round state at one point in time.
// Words is ordered most recent first.
type Snapshot struct {
	RootWord string   `json:"rootWord"`
	Words    []string `json:"words"`
	Score    int      `json:"score"`
}

// Reason explains a rejected submission. ReasonNone means accepted.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTooShortOrSameAsRoot
	ReasonAlreadyUsed
	ReasonNotDerivable
	ReasonNotRecognized
)

// String returns a stable machine-readable name (used in JSON payloads).
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTooShortOrSameAsRoot:
		return "too_short_or_same_as_root"
	case ReasonAlreadyUsed:
		return "already_used"
	case ReasonNotDerivable:
		return "not_derivable"
	case ReasonNotRecognized:
		return "not_recognized"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Title is the short alert heading shown to the player.
func (r Reason) Title() string {
	switch r {
	case ReasonTooShortOrSameAsRoot:
		return "Word cannot be used"
	case ReasonAlreadyUsed:
		return "Word used already"
	case ReasonNotDerivable:
		return "Word not possible"
	case ReasonNotRecognized:
		return "Word not recognized"
	}
	return ""
}

// Message is the alert body. NotDerivable names the root word.
func (r Reason) Message(rootWord string) string {
	switch r {
	case ReasonTooShortOrSameAsRoot:
		return "Word must contain at least 4 letters and differ from root word."
	case ReasonAlreadyUsed:
		return "Be more original"
	case ReasonNotDerivable:
		return fmt.Sprintf("You can't spell that word from %s!", rootWord)
	case ReasonNotRecognized:
		return "You can't just make them up, you know!"
	}
	return ""
}

// Result is the outcome of Submit: either Points > 0 with ReasonNone,
// or a rejection Reason with zero points.
type Result struct {
	Points int
	Reason Reason
}

// Accepted reports whether the submission was added to the round.
func (r Result) Accepted() bool { return r.Reason == ReasonNone }

// EventType tags an Event.
type EventType string

const (
	EvtStarted  EventType = "started"
	EvtAccepted EventType = "accepted"
	EvtRejected EventType = "rejected"
)

// Event is delivered to observers after a start or submit completes.
// Word/Points are set for accepted events; Word/Reason/Title/Message for rejected ones.
type Event struct {
	Type    EventType
	Round   Snapshot
	Word    string
	Points  int
	Reason  Reason
	Title   string
	Message string
}

// Observer receives engine events. It runs while the engine is still
// serializing callers, so it must not call back into the engine.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) { f(e) }

// WordSource supplies root words. ok=false signals no word is available.
type WordSource interface {
	PickRootWord() (word string, ok bool)
}

// SourceFunc adapts a plain function to WordSource.
type SourceFunc func() (string, bool)

// PickRootWord calls f().
func (f SourceFunc) PickRootWord() (string, bool) { return f() }

// Oracle decides whether a word is a real word in a language.
type Oracle interface {
	IsRealWord(word, language string) bool
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(word, language string) bool

// IsRealWord calls f(word, language).
func (f OracleFunc) IsRealWord(word, language string) bool { return f(word, language) }
