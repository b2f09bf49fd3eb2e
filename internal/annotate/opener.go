package annotate

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/browser"
)

// Opener shows a search page for a novel
type Opener interface {
	// Open displays the page at url
	Open(url string) error
}

// BrowserOpener opens pages in the user's default browser
type BrowserOpener struct{}

// NewBrowserOpener creates an opener backed by the system browser
func NewBrowserOpener() *BrowserOpener {
	// keep the browser launcher's own chatter out of the prompt
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &BrowserOpener{}
}

// Open launches the default browser
func (o *BrowserOpener) Open(u string) error {
	if err := browser.OpenURL(u); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

// PrintOpener writes the URL instead of opening it
type PrintOpener struct {
	w io.Writer
}

// NewPrintOpener creates an opener that prints search URLs to w
func NewPrintOpener(w io.Writer) *PrintOpener {
	return &PrintOpener{w: w}
}

// Open prints the URL
func (o *PrintOpener) Open(u string) error {
	_, err := fmt.Fprintf(o.w, "Search: %s\n", u)
	return err
}

// SearchURL fills the single %s in template with the query-escaped title,
// e.g. "https://www.amazon.com/s?k=%s" and "The Fifth Season" gives
// "https://www.amazon.com/s?k=The+Fifth+Season".
func SearchURL(template, title string) string {
	return strings.Replace(template, "%s", url.QueryEscape(title), 1)
}
