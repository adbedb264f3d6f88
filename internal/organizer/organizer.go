// Package organizer assigns loose files to the most plausible existing
// directory by scoring filenames against directory names, then moves the
// files after resolution.
//
// The flow is: Calculate builds an Action per source file with a scored
// Candidate per plausible target directory, a Resolver picks at most one
// candidate per action, and the Executor performs the grouped moves and
// prunes emptied source directories.
package organizer

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLengthThreshold is the minimum word length considered when
// splitting a directory name into match elements.
const DefaultLengthThreshold = 3

// Filesystem is the thin I/O surface the organizer depends on. The
// os-backed implementation lives in internal/fsys; tests substitute
// fakes.
type Filesystem interface {
	// ListDirs returns the names of the immediate subdirectories of root.
	ListDirs(root string) ([]string, error)
	// ListFiles returns root-relative paths of the regular files under root.
	ListFiles(root string) ([]string, error)
	// Move relocates a file into the target directory.
	Move(source, targetDir string) error
	// RemoveIfEmpty deletes dir only when it contains no entries.
	RemoveIfEmpty(dir string) error
}

// Organizer matches source files to target directories and carries the
// resulting actions through resolution and execution.
type Organizer struct {
	fs              Filesystem
	log             *log.Logger
	sourceRoots     []string
	rules           map[string]string
	lengthThreshold int
	dryRun          bool

	actions map[string]*Action // keyed by full source path
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithSourceRoots sets the default source roots used when Calculate is
// called without explicit ones.
func WithSourceRoots(roots ...string) Option {
	return func(o *Organizer) { o.sourceRoots = append(o.sourceRoots, roots...) }
}

// WithRules sets the override rules. A source path containing a rule
// pattern gets a forced candidate for the mapped absolute target path,
// scored with RuleScore.
func WithRules(rules map[string]string) Option {
	return func(o *Organizer) {
		for pattern, target := range rules {
			o.rules[pattern] = target
		}
	}
}

// WithLengthThreshold sets the minimum element length for target name
// matching. Values below one are clamped to one.
func WithLengthThreshold(threshold int) Option {
	return func(o *Organizer) { o.lengthThreshold = threshold }
}

// WithLogger injects the application logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Organizer) { o.log = logger }
}

// WithDryRun makes Run report the planned moves without touching the
// filesystem.
func WithDryRun() Option {
	return func(o *Organizer) { o.dryRun = true }
}

// New returns an organizer working against fs.
func New(fs Filesystem, opts ...Option) *Organizer {
	o := &Organizer{
		fs:              fs,
		log:             log.Default(),
		rules:           make(map[string]string),
		lengthThreshold: DefaultLengthThreshold,
		actions:         make(map[string]*Action),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.lengthThreshold < 1 {
		o.lengthThreshold = 1
	}
	return o
}

// Calculate scores every source file against the immediate
// subdirectories of targetRoot and extends the action map. It may be
// called repeatedly with different roots; candidates accumulate per
// source file and a file with no candidate so far is never persisted.
// When sourceRoots is empty the configured defaults are used; with
// neither, ErrNoSourceRoots is returned.
func (o *Organizer) Calculate(targetRoot string, sourceRoots ...string) error {
	roots := sourceRoots
	if len(roots) == 0 {
		roots = o.sourceRoots
	}
	if len(roots) == 0 {
		o.log.Error("Source root is not set")
		return ErrNoSourceRoots
	}

	dirs, err := o.fs.ListDirs(targetRoot)
	if err != nil {
		return fmt.Errorf("listing targets in %q: %w", targetRoot, err)
	}
	templates := make([]*Candidate, 0, len(dirs))
	for _, name := range dirs {
		templates = append(templates, NewCandidate(targetRoot, name, o.lengthThreshold))
	}

	for _, root := range roots {
		files, err := o.fs.ListFiles(root)
		if err != nil {
			return fmt.Errorf("listing files in %q: %w", root, err)
		}
		for _, rel := range files {
			key := filepath.Join(root, rel)
			action, ok := o.actions[key]
			if !ok {
				action = NewAction(rel, root)
			}

			for pattern, target := range o.rules {
				if strings.Contains(rel, pattern) {
					forced := NewCandidate(filepath.Dir(target), filepath.Base(target), o.lengthThreshold)
					action.Add(forced.WithScore(RuleScore))
				}
			}

			for _, template := range templates {
				if score := template.scoreAgainst(rel); score > 0 {
					action.Add(template.WithScore(score))
				}
			}

			if action.HasCandidates() {
				o.actions[key] = action
			}
		}
	}
	return nil
}

// Actions returns the current actions sorted by full source path.
func (o *Organizer) Actions() []*Action {
	actions := make([]*Action, 0, len(o.actions))
	for _, a := range o.actions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].SourcePath() < actions[j].SourcePath()
	})
	return actions
}

// Decision pairs an action with its chosen target candidate.
type Decision struct {
	Action *Action
	Target *Candidate
}

// Resolve reduces every action to at most one chosen candidate, visiting
// actions in ascending source-path order. The returned queue preserves
// the visitation order. A user quit surfaces as ErrQuit with no queue:
// nothing resolved before the quit is carried over into execution.
func (o *Organizer) Resolve(r Resolver) ([]Decision, error) {
	var queue []Decision
	for _, action := range o.Actions() {
		target, err := r.Resolve(action)
		if err != nil {
			return nil, err
		}
		if target != nil {
			queue = append(queue, Decision{Action: action, Target: target})
		}
	}
	return queue, nil
}

// ConfirmPlan is asked once with the grouped move plan before execution.
// Returning false discards the entire queue; no partial execution
// happens.
type ConfirmPlan func(groups []Group) (bool, error)

// Run resolves the actions, optionally confirms the grouped plan,
// executes the moves and prunes emptied source directories. A user quit
// during resolution aborts cleanly with nothing executed. Individual
// move failures are reported and do not stop the batch.
func (o *Organizer) Run(r Resolver, confirm ConfirmPlan) error {
	queue, err := o.Resolve(r)
	if errors.Is(err, ErrQuit) {
		o.log.Info("Aborted, nothing moved")
		return nil
	}
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		o.log.Info("Nothing to do")
		return nil
	}

	groups := GroupByTarget(queue)
	if confirm != nil {
		ok, err := confirm(groups)
		if err != nil {
			return err
		}
		if !ok {
			o.log.Info("Plan discarded, nothing moved")
			return nil
		}
	}

	executor := NewExecutor(o.fs, o.log, o.dryRun)
	failed := executor.Execute(groups)
	executor.Cleanup(queue)

	if len(failed) > 0 {
		o.log.Warn("Finished with failures", "moved", len(queue)-len(failed), "failed", len(failed))
	} else if !o.dryRun {
		o.log.Info("Finished", "moved", len(queue))
	}
	return nil
}
