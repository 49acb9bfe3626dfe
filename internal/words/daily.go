package words

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailySource gives every player the same root word on a given UTC date.
type DailySource struct {
	words []string
	salt  []byte
	now   func() time.Time
}

// NewDailySource builds a date-keyed source. The salt keys a BLAKE2b hash and
// may be at most 64 bytes. now defaults to time.Now.
func NewDailySource(list []string, salt string, now func() time.Time) (*DailySource, error) {
	if len(salt) > blake2b.Size {
		return nil, fmt.Errorf("words: daily salt is %d bytes, max %d", len(salt), blake2b.Size)
	}
	if now == nil {
		now = time.Now
	}
	return &DailySource{words: append([]string(nil), list...), salt: []byte(salt), now: now}, nil
}

// PickRootWord returns today's word, or ok=false when the list is empty.
func (s *DailySource) PickRootWord() (string, bool) {
	if len(s.words) == 0 {
		return "", false
	}
	return s.words[s.Index(s.now())], true
}

// Today is the date key PickRootWord currently uses.
func (s *DailySource) Today() string { return DateKey(s.now()) }

// Index returns the deterministic list index for date:
// BLAKE2b-256(key=salt, YYYY-MM-DD), first 8 bytes big-endian, mod list length.
func (s *DailySource) Index(date time.Time) int {
	if len(s.words) == 0 {
		return 0
	}
	h, err := blake2b.New256(s.salt)
	if err != nil {
		// unreachable: salt length is checked in NewDailySource
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(len(s.words)))
}
