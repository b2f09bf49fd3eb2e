package annotate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/novel-search/internal/novel"
)

// ErrInvalidAnswer is returned by ParseAnswer for input it does not understand
var ErrInvalidAnswer = errors.New("invalid answer")

// Action is what the user asked for at the prompt
type Action int

const (
	ActionClassify Action = iota
	ActionSkip
	ActionQuit
)

// Answer is a parsed prompt response
type Answer struct {
	Action Action
	POV    novel.POV
	Read   bool
}

// ParseAnswer interprets a prompt response.
//
// "quit" and "exit" stop, "s" and "skip" move on without saving. Otherwise the
// input must be 1, 2 or 3, optionally with an "r" anywhere to mark the novel as
// read: "1", "1r", "r1" and "R3" are all valid, "1 r" is not.
func ParseAnswer(input string) (Answer, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "quit", "exit":
		return Answer{Action: ActionQuit}, nil
	case "s", "skip":
		return Answer{Action: ActionSkip}, nil
	}

	read := strings.Contains(input, "r")
	digit := strings.ReplaceAll(input, "r", "")

	switch digit {
	case "1", "2", "3":
		pov, err := novel.ParsePOV(digit)
		if err != nil {
			return Answer{}, err
		}
		return Answer{Action: ActionClassify, POV: pov, Read: read}, nil
	default:
		return Answer{}, fmt.Errorf("%w: %q", ErrInvalidAnswer, input)
	}
}
