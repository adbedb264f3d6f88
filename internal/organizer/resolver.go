package organizer

import (
	"fmt"
	"io"
	"strings"
)

// Resolver picks at most one target candidate for an action. A nil
// candidate abandons the action. ErrQuit aborts the whole resolution
// pass.
type Resolver interface {
	Resolve(action *Action) (*Candidate, error)
}

// AutomaticResolver unconditionally takes the top-ranked candidate.
type AutomaticResolver struct{}

// Resolve implements Resolver.
func (AutomaticResolver) Resolve(action *Action) (*Candidate, error) {
	ranked := action.Ranked()
	if len(ranked) == 0 {
		return nil, nil
	}
	return ranked[0], nil
}

// Prompter reads one line of user input for a prompt. The CLI backs it
// with the terminal; tests script it.
type Prompter interface {
	Prompt(text string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(text string) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(text string) (string, error) { return f(text) }

// promptState is the sticky answer mode of one interactive resolution
// run.
type promptState int

const (
	stateAsk promptState = iota
	stateAcceptAll
	stateSkipAll
)

// InteractiveResolver offers an action's candidates in ranked order and
// asks the user about each offer:
//
//	y          commit the offered candidate
//	s          reject this candidate only, offer the next-ranked one
//	n, empty   reject the whole action
//	a          commit this candidate, auto-accept every later action
//	k          skip this offer and every later one
//	q          abort the whole pass
//
// Anything else re-prompts; malformed input never commits. The
// accept-all and skip-all modes are state of this resolver instance and
// last for a single resolution run.
type InteractiveResolver struct {
	prompter Prompter
	out      io.Writer
	state    promptState
}

// NewInteractiveResolver returns an interactive resolver in the default
// ask state, writing its offers to out.
func NewInteractiveResolver(p Prompter, out io.Writer) *InteractiveResolver {
	return &InteractiveResolver{prompter: p, out: out}
}

// Resolve implements Resolver.
func (r *InteractiveResolver) Resolve(action *Action) (*Candidate, error) {
	ranked := action.Ranked()
	if len(ranked) == 0 {
		return nil, nil
	}
	switch r.state {
	case stateAcceptAll:
		return ranked[0], nil
	case stateSkipAll:
		return nil, nil
	}

	fmt.Fprintf(r.out, "\nCurrent file: %s\n", action.Source())
	for _, candidate := range ranked {
		fmt.Fprintf(r.out, "Proposed target: %s\n", candidate.Name())
		prompt := fmt.Sprintf(
			"Move? (score: %d, ratio: %.2f) [ (y)es/(s)kip/(N)o/(a)ccept-all/s(k)ip-all/(q)uit ] ",
			candidate.Score(), candidate.Ratio(),
		)
	offer:
		for {
			answer, err := r.prompter.Prompt(prompt)
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				return candidate, nil
			case "s", "skip":
				break offer
			case "n", "no", "":
				return nil, nil
			case "a", "all":
				r.state = stateAcceptAll
				return candidate, nil
			case "k":
				r.state = stateSkipAll
				return nil, nil
			case "q", "quit":
				return nil, ErrQuit
			default:
				fmt.Fprintf(r.out, "Unknown choice: %s\n", answer)
			}
		}
	}
	// Every candidate was skipped.
	return nil, nil
}
