// Package edit runs an interactive prompt to add patterns to, and remove
// patterns from, the stored pattern sets.
//
//	violence _ kill|hurt      adds the pattern to the set "violence"
//	violence _ kill|hurt/     removes it
package edit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/storage"
)

const (
	actionAdd    = 1
	actionDelete = 0

	// deleteSuffix at the end of a line removes the pattern
	deleteSuffix = "/"
)

var (
	ErrExists   = errors.New("pattern already exists")
	ErrNotExist = errors.New("pattern does not exist")
)

type Handler struct {
	Library match.Library
	Repo    storage.PatternRepository
	Out     io.Writer
}

func NewHandler(l match.Library, repo storage.PatternRepository, out io.Writer) *Handler {
	return &Handler{
		Library: l,
		Repo:    repo,
		Out:     out,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Out, "🔑 SET PATTERN adds, SET PATTERN/ removes, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("relex edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if strings.TrimSpace(in) == "quit" {
			return nil
		}

		history = append(history, in)
		if err := h.Apply(in); err != nil {
			// storage errors end the session
			var perr *parseError
			if !errors.As(err, &perr) && !errors.Is(err, ErrExists) && !errors.Is(err, ErrNotExist) {
				return err
			}
			fmt.Fprintf(h.Out, "❌ %s\n", err)
			continue
		}

		fmt.Fprintln(h.Out, "✔")
	}
}

type parseError struct {
	msg string
}

func (e *parseError) Error() string { return e.msg }

// Apply adds or removes the pattern of one line and writes the set. A set
// name that does not exist creates a new set.
func (h *Handler) Apply(in string) error {
	ps, p, action, err := h.parse(in)
	if err != nil {
		return err
	}

	if action == actionAdd {
		if patternExists(ps, p) {
			return ErrExists
		}
		ps.Patterns = append(ps.Patterns, p)
	} else {
		if !patternExists(ps, p) {
			return ErrNotExist
		}
		ps = removePattern(ps, p)
	}

	if err := h.Repo.Write(ps); err != nil {
		return err
	}

	// reload the set after write
	stored, err := h.Repo.Read(ps.Name)
	if err != nil {
		return err
	}

	for i, s := range h.Library {
		if s.Name == stored.Name {
			h.Library[i] = stored
			return nil
		}
	}

	h.Library = append(h.Library, stored)
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.Complete(in.TextBeforeCursor())
	}
}

// Complete suggests set names for the first word and the patterns of the set
// afterwards.
func (h *Handler) Complete(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	if befCursor == "" {
		return s
	}

	tokens := strings.Split(befCursor, " ")

	if len(tokens) == 1 {
		for _, ps := range h.Library {
			if strings.HasPrefix(ps.Name, befCursor) {
				s = append(s, prompt.Suggest{Text: ps.Name, Description: fmt.Sprintf("%d patterns", len(ps.Patterns))})
			}
		}

		return s
	}

	// First token must be the set
	ps, ok := h.Library.Get(tokens[0])
	if !ok {
		return s
	}

	rest := strings.Join(tokens[1:], " ")
	if rest == "" {
		return s
	}

	for _, p := range ps.Patterns {
		// Do not show suggestion at the end of the text
		if strings.HasPrefix(p.String(), rest) && len(rest) < len(p.String()) {
			s = append(s, prompt.Suggest{Text: p.String()})
		}
	}

	return s
}

func (h *Handler) parse(in string) (match.PatternSet, match.Pattern, int, error) {
	tokens := strings.Fields(in)

	action := actionAdd
	if len(tokens) == 0 {
		return match.PatternSet{}, match.Pattern{}, action, &parseError{"no pattern set given"}
	}

	lastToken := tokens[len(tokens)-1]
	if strings.HasSuffix(lastToken, deleteSuffix) {
		action = actionDelete
		tokens[len(tokens)-1] = strings.TrimSuffix(lastToken, deleteSuffix)
	}

	ps, ok := h.Library.Get(tokens[0])
	if !ok {
		if action == actionDelete {
			return ps, match.Pattern{}, action, &parseError{"there is no such pattern set: " + tokens[0]}
		}
		ps = match.PatternSet{Name: tokens[0]}
	}

	expr := strings.TrimSpace(strings.Join(tokens[1:], " "))
	if expr == "" {
		return ps, match.Pattern{}, action, &parseError{"no pattern given"}
	}

	p, err := match.Parse(expr)
	if err != nil {
		return ps, match.Pattern{}, action, &parseError{err.Error()}
	}

	return ps, p, action, nil
}

func patternExists(ps match.PatternSet, p match.Pattern) bool {
	for _, e := range ps.Patterns {
		if e == p {
			return true
		}
	}

	return false
}

func removePattern(ps match.PatternSet, p match.Pattern) match.PatternSet {
	patterns := make([]match.Pattern, 0, len(ps.Patterns))
	for _, e := range ps.Patterns {
		if e != p {
			patterns = append(patterns, e)
		}
	}

	return match.PatternSet{Name: ps.Name, Patterns: patterns}
}
