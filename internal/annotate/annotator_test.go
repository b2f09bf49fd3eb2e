package annotate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pfrederiksen/novel-search/internal/novel"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(u string) error {
	o.urls = append(o.urls, u)
	return o.err
}

type saveRecorder struct {
	calls     int
	annotated []int
	err       error
}

func (s *saveRecorder) save(novels []*novel.Novel) error {
	s.calls++
	count := 0
	for _, n := range novels {
		if n.Annotated() {
			count++
		}
	}
	s.annotated = append(s.annotated, count)
	return s.err
}

func collection() []*novel.Novel {
	done := novel.New("Already Done", "Hugo", 2022)
	done.SetPOV(novel.POVThird, true)
	return []*novel.Novel{
		novel.New("Older Novel", "Nebula", 1995),
		done,
		novel.New("Newest Novel", "Hugo|Nebula", 2021),
		novel.New("Middle Novel", "Hugo", 2010),
	}
}

func TestRun_AnnotatesMostRecentFirst(t *testing.T) {
	novels := collection()
	opener := &recordingOpener{}
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("1r\n3\n2\n"), &out, opener, saver.save, "https://www.amazon.com/s?k=%s")
	result, err := a.Run(context.Background(), novels)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Annotated != 3 || result.Skipped != 0 || result.Quit {
		t.Errorf("result = %+v, want 3 annotated", result)
	}

	wantURLs := []string{
		"https://www.amazon.com/s?k=Newest+Novel",
		"https://www.amazon.com/s?k=Middle+Novel",
		"https://www.amazon.com/s?k=Older+Novel",
	}
	if len(opener.urls) != len(wantURLs) {
		t.Fatalf("opened %v, want %v", opener.urls, wantURLs)
	}
	for i := range wantURLs {
		if opener.urls[i] != wantURLs[i] {
			t.Errorf("url %d = %q, want %q", i, opener.urls[i], wantURLs[i])
		}
	}

	if novels[2].POVString() != "first" || !novels[2].Read {
		t.Errorf("newest = %+v, want first/read", novels[2])
	}
	if novels[3].POVString() != "third" || novels[3].Read {
		t.Errorf("middle = %+v, want third/unread", novels[3])
	}
	if novels[0].POVString() != "second" {
		t.Errorf("older = %+v, want second", novels[0])
	}

	if saver.calls != 3 {
		t.Errorf("saved %d times, want once per novel", saver.calls)
	}
	if saver.annotated[0] != 2 || saver.annotated[2] != 4 {
		t.Errorf("annotated counts at save = %v, want [2 3 4]", saver.annotated)
	}

	output := out.String()
	for _, want := range []string{
		"Processing: 'Newest Novel' (Hugo|Nebula Award, year=2021)",
		"Set POV = first and marked as read for 'Newest Novel'",
		"Set POV = third and marked as unread for 'Middle Novel'",
		"All novels have assigned POV. Nothing left to process.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRun_InvalidInputReprompts(t *testing.T) {
	novels := []*novel.Novel{novel.New("Only Novel", "Hugo", 2000)}
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("4\nfirst\n2r\n"), &out, nil, saver.save, "%s")
	result, err := a.Run(context.Background(), novels)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Annotated != 1 {
		t.Errorf("Annotated = %d, want 1", result.Annotated)
	}
	if got := strings.Count(out.String(), invalidHint); got != 2 {
		t.Errorf("printed invalid hint %d times, want 2", got)
	}
	if novels[0].POVString() != "second" || !novels[0].Read {
		t.Errorf("novel = %+v, want second/read", novels[0])
	}
}

func TestRun_Quit(t *testing.T) {
	novels := collection()
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("1\nquit\n3\n"), &out, nil, saver.save, "%s")
	result, err := a.Run(context.Background(), novels)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !result.Quit || result.Annotated != 1 {
		t.Errorf("result = %+v, want quit after 1", result)
	}
	if novels[3].Annotated() {
		t.Error("novel after quit should stay unannotated")
	}
	if !strings.Contains(out.String(), "Exiting. Progress has been saved.") {
		t.Errorf("missing exit message:\n%s", out.String())
	}
}

func TestRun_EOFStops(t *testing.T) {
	novels := collection()
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("2"), &out, nil, saver.save, "%s")
	result, err := a.Run(context.Background(), novels)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !result.Quit || result.Annotated != 1 || saver.calls != 1 {
		t.Errorf("result = %+v saves = %d, want quit after 1 save", result, saver.calls)
	}
}

func TestRun_Skip(t *testing.T) {
	novels := collection()
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("s\n1\nskip\n"), &out, nil, saver.save, "%s")
	result, err := a.Run(context.Background(), novels)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Skipped != 2 || result.Annotated != 1 || result.Quit {
		t.Errorf("result = %+v, want 2 skipped 1 annotated", result)
	}
	if novels[2].Annotated() || !novels[3].Annotated() || novels[0].Annotated() {
		t.Error("only the middle novel should be annotated")
	}
	if !strings.Contains(out.String(), "2 novel(s) skipped") {
		t.Errorf("missing skip summary:\n%s", out.String())
	}
}

func TestRun_NothingPending(t *testing.T) {
	done := novel.New("Done", "Hugo", 2000)
	done.SetPOV(novel.POVFirst, false)
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader(""), &out, nil, saver.save, "%s")
	result, err := a.Run(context.Background(), []*novel.Novel{done})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Annotated != 0 || saver.calls != 0 {
		t.Errorf("result = %+v saves = %d, want nothing", result, saver.calls)
	}
	if !strings.Contains(out.String(), "Nothing left to process") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_SaveError(t *testing.T) {
	boom := errors.New("disk full")
	saver := &saveRecorder{err: boom}
	var out bytes.Buffer

	a := New(strings.NewReader("1\n"), &out, nil, saver.save, "%s")
	_, err := a.Run(context.Background(), collection())
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want disk full", err)
	}
}

func TestRun_OpenerFailurePrintsURL(t *testing.T) {
	opener := &recordingOpener{err: errors.New("no display")}
	saver := &saveRecorder{}
	var out bytes.Buffer

	a := New(strings.NewReader("3\n"), &out, opener, saver.save, "https://example.com/?q=%s")
	if _, err := a.Run(context.Background(), []*novel.Novel{novel.New("Dune", "Hugo", 1966)}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(out.String(), "Search: https://example.com/?q=Dune") {
		t.Errorf("expected fallback URL in output:\n%s", out.String())
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	a := New(strings.NewReader("1\n"), &out, nil, (&saveRecorder{}).save, "%s")
	if _, err := a.Run(ctx, collection()); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		template string
		title    string
		want     string
	}{
		{"https://www.amazon.com/s?k=%s", "The Fifth Season", "https://www.amazon.com/s?k=The+Fifth+Season"},
		{"https://www.amazon.com/s?k=%s", "Jonathan Strange & Mr Norrell", "https://www.amazon.com/s?k=Jonathan+Strange+%26+Mr+Norrell"},
		{"https://openlibrary.org/search?q=%s&mode=everything", "Dune", "https://openlibrary.org/search?q=Dune&mode=everything"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := SearchURL(tt.template, tt.title); got != tt.want {
				t.Errorf("SearchURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintOpener(t *testing.T) {
	var out bytes.Buffer
	if err := NewPrintOpener(&out).Open("https://example.com"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if out.String() != "Search: https://example.com\n" {
		t.Errorf("output = %q", out.String())
	}
}
