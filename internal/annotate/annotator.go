package annotate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/novel"
)

const (
	prompt      = "Enter POV (1=First, 2=Second, 3=Third, add 'r' if read), 's' to skip, or 'quit'/'exit': "
	invalidHint = "Invalid input. Please enter 1, 2, 3 (optionally with 'r'), s, or quit/exit."

	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiGreen = "\x1b[32m"
)

// SaveFunc persists the whole collection
type SaveFunc func(novels []*novel.Novel) error

// Annotator runs the interactive annotation loop
type Annotator struct {
	in             io.Reader
	out            io.Writer
	opener         Opener
	save           SaveFunc
	searchTemplate string
	color          bool
}

// Result summarizes an annotation session
type Result struct {
	Annotated int
	Skipped   int
	Quit      bool
}

// New creates an Annotator reading answers from in and writing prompts to out
func New(in io.Reader, out io.Writer, opener Opener, save SaveFunc, searchTemplate string) *Annotator {
	return &Annotator{
		in:             in,
		out:            out,
		opener:         opener,
		save:           save,
		searchTemplate: searchTemplate,
	}
}

// SetColor enables ANSI highlighting of titles and confirmations
func (a *Annotator) SetColor(enabled bool) {
	a.color = enabled
}

type line struct {
	text string
	err  error
}

// Run prompts for every unannotated novel, most recent first, and saves the
// collection after each classification. Annotations are applied to the
// novels in place. Quitting or reaching the end of input is not an error.
func (a *Annotator) Run(ctx context.Context, novels []*novel.Novel) (*Result, error) {
	result := &Result{}

	pending := novel.Pending(novels)
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "All novels have assigned POV. Nothing left to process.")
		return result, nil
	}

	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(a.in, stop)

	for i, n := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fmt.Fprintf(a.out, "\nProcessing: '%s' (%s Award, year=%d) [%d of %d]\n",
			a.highlight(n.Title), n.Award, n.Year, i+1, len(pending))
		a.openSearch(n)

		answer, err := a.ask(ctx, lines)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "\nExiting. Progress has been saved.")
				result.Quit = true
				return result, nil
			}
			return result, err
		}

		switch answer.Action {
		case ActionQuit:
			fmt.Fprintln(a.out, "Exiting. Progress has been saved.")
			result.Quit = true
			return result, nil
		case ActionSkip:
			result.Skipped++
			logger.Debug("Skipped novel", logger.Fields{"title": n.Title, "year": n.Year})
			continue
		}

		n.SetPOV(answer.POV, answer.Read)
		if err := a.save(novels); err != nil {
			return result, fmt.Errorf("saving progress: %w", err)
		}
		result.Annotated++
		logger.IncrCounter("annotate.saved")

		readStatus := "and marked as unread"
		if n.Read {
			readStatus = "and marked as read"
		}
		fmt.Fprintln(a.out, a.confirm(fmt.Sprintf("Set POV = %s %s for '%s'", answer.POV, readStatus, n.Title)))
	}

	if result.Skipped > 0 {
		fmt.Fprintf(a.out, "\nReached the end of the list with %d novel(s) skipped.\n", result.Skipped)
	} else {
		fmt.Fprintln(a.out, "\nAll novels have assigned POV. Nothing left to process.")
	}
	return result, nil
}

// ask prompts until a valid answer arrives
func (a *Annotator) ask(ctx context.Context, lines <-chan line) (Answer, error) {
	for {
		fmt.Fprint(a.out, prompt)

		var l line
		var ok bool
		select {
		case <-ctx.Done():
			return Answer{}, ctx.Err()
		case l, ok = <-lines:
		}
		if !ok {
			return Answer{}, io.EOF
		}
		if l.err != nil {
			return Answer{}, fmt.Errorf("reading answer: %w", l.err)
		}

		answer, err := ParseAnswer(l.text)
		if err != nil {
			fmt.Fprintln(a.out, invalidHint)
			continue
		}
		return answer, nil
	}
}

func (a *Annotator) openSearch(n *novel.Novel) {
	if a.opener == nil {
		return
	}
	u := SearchURL(a.searchTemplate, n.Title)
	if err := a.opener.Open(u); err != nil {
		logger.Warn("Could not open search page", logger.Fields{"url": u, "title": n.Title})
		fmt.Fprintf(a.out, "Search: %s\n", u)
	}
}

func (a *Annotator) highlight(s string) string {
	if !a.color {
		return s
	}
	return ansiBold + s + ansiReset
}

func (a *Annotator) confirm(s string) string {
	if !a.color {
		return s
	}
	return ansiGreen + s + ansiReset
}

// readLines delivers input lines on the returned channel until EOF, a read
// error, or stop is closed. The channel is closed at EOF.
func readLines(r io.Reader, stop <-chan struct{}) <-chan line {
	lines := make(chan line)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- line{text: scanner.Text()}:
			case <-stop:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- line{err: err}:
			case <-stop:
			}
		}
	}()
	return lines
}
