// Package console plays a round in the terminal: one candidate word per line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordscramble/internal/round"
)

const (
	cmdNew  = ":new"
	cmdQuit = ":quit"
)

// Printer renders engine events as text.
type Printer struct {
	w io.Writer
}

// NewPrinter writes to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Notify implements round.Observer.
func (p *Printer) Notify(ev round.Event) {
	switch ev.Type {
	case round.EvtStarted:
		fmt.Fprintf(p.w, "Root word: %s\nYour score is %d\n", ev.Round.RootWord, ev.Round.Score)
	case round.EvtAccepted:
		fmt.Fprintf(p.w, "+%d  %s\nYour score is %d\n", ev.Points, ev.Word, ev.Round.Score)
		for _, w := range ev.Round.Words {
			fmt.Fprintf(p.w, "  (%d) %s\n", len([]rune(w)), w)
		}
	case round.EvtRejected:
		fmt.Fprintf(p.w, "%s: %s\n", ev.Title, ev.Message)
	}
}

// Play starts a round on eng and feeds it lines from in until EOF, ":quit",
// or ctx is cancelled. ":new" restarts the round. The engine should have
// been built with a Printer (or another observer) to show results.
//
// Lines are read on a separate goroutine so cancellation is seen while input
// is blocked. On cancel that goroutine stays parked in Read until in yields.
func Play(ctx context.Context, eng *round.Engine, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Type words made from the root word. %s restarts, %s exits.\n", cmdNew, cmdQuit)
	eng.Start()

	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			switch strings.TrimSpace(line) {
			case cmdQuit:
				return nil
			case cmdNew:
				eng.Start()
				continue
			}
			eng.Submit(line)
		}
	}
}
