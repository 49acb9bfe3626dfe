package words

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	list, err := Load("", "en")
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if !slices.Contains(list, "silkworm") {
		t.Fatalf("embedded start words missing silkworm: %v", list)
	}
	for _, w := range list {
		if w != strings.ToLower(w) || strings.HasPrefix(w, "#") {
			t.Fatalf("unnormalized word %q", w)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	body := "# comment\n  Planets \n\nplanets\nno-dash\nTeardrop\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := Load(path, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := []string{"planets", "teardrop"}; !slices.Equal(list, want) {
		t.Fatalf("list = %v, want %v", list, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), "en"); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# nothing\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, "en"); err != ErrEmptyList {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
}

func TestNormalizeUsesLanguageCaseRules(t *testing.T) {
	cases := []struct {
		lang string
		in   []string
		want []string
	}{
		{lang: "en", in: []string{" KILIM ", "kilim", "# x"}, want: []string{"kilim"}},
		{lang: "tr", in: []string{"KILIM", "İKİ"}, want: []string{"kılım", "iki"}},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			if got := Normalize(tc.in, tc.lang); !slices.Equal(got, tc.want) {
				t.Fatalf("Normalize(%q, %q) = %q, want %q", tc.in, tc.lang, got, tc.want)
			}
		})
	}
	if got := Lower("tr", "KILIM"); got != "kılım" {
		t.Fatalf("Lower tr = %q", got)
	}
}

func TestRandomSource(t *testing.T) {
	src := NewRandomSource([]string{"silkworm", "planets", "teardrop"}, func(n int) int { return n - 1 })
	if w, ok := src.PickRootWord(); !ok || w != "teardrop" {
		t.Fatalf("pick = %q, %v", w, ok)
	}

	empty := NewRandomSource(nil, nil)
	if _, ok := empty.PickRootWord(); ok {
		t.Fatal("empty source should report no word")
	}

	crypto := NewRandomSource([]string{"silkworm", "planets"}, nil)
	for i := 0; i < 20; i++ {
		w, ok := crypto.PickRootWord()
		if !ok || (w != "silkworm" && w != "planets") {
			t.Fatalf("unexpected pick %q", w)
		}
	}
}

func TestDailySourceIsStablePerDate(t *testing.T) {
	list := []string{"silkworm", "planets", "teardrop", "monsters", "painters"}
	day := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	now := day

	src, err := NewDailySource(list, "salt", func() time.Time { return now })
	if err != nil {
		t.Fatal(err)
	}
	first, ok := src.PickRootWord()
	if !ok {
		t.Fatal("expected a word")
	}

	now = day.Add(20 * time.Hour)
	if again, _ := src.PickRootWord(); again != first {
		t.Fatalf("same date gave %q then %q", first, again)
	}
	if got := src.Today(); got != "2026-10-19" {
		t.Fatalf("today = %q", got)
	}

	other, err := NewDailySource(list, "salt", func() time.Time { return day })
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := other.PickRootWord(); w != first {
		t.Fatalf("two sources with the same salt disagree: %q vs %q", w, first)
	}
}

func TestDailySourceSpreadsAcrossDates(t *testing.T) {
	list := []string{"silkworm", "planets", "teardrop", "monsters", "painters"}
	src, err := NewDailySource(list, "salt", nil)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 60; d++ {
		i := src.Index(start.AddDate(0, 0, d))
		if i < 0 || i >= len(list) {
			t.Fatalf("index %d out of range", i)
		}
		seen[i] = true
	}
	if len(seen) < 2 {
		t.Fatalf("60 days all mapped to the same word")
	}
}

func TestDailySourceRejectsLongSalt(t *testing.T) {
	if _, err := NewDailySource([]string{"silkworm"}, strings.Repeat("x", 65), nil); err == nil {
		t.Fatal("expected error for 65-byte salt")
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 10, 20, 5, 0, 0, 0, loc)
	if got := DateKey(ts); got != "2026-10-19" {
		t.Fatalf("DateKey = %q, want 2026-10-19", got)
	}
}
