package organizer

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Group is the part of the decision queue headed for one target
// directory. Queue order is preserved inside a group.
type Group struct {
	Target    *Candidate
	Decisions []Decision
}

// GroupByTarget groups the queue by chosen target so moves can be
// reported per destination. Groups are ordered by target path for
// deterministic output; within a group the queue order is kept.
func GroupByTarget(queue []Decision) []Group {
	index := make(map[candidateKey]int)
	var groups []Group
	for _, d := range queue {
		k := d.Target.key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Target: d.Target})
		}
		groups[i].Decisions = append(groups[i].Decisions, d)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if pi, pj := groups[i].Target.Path(), groups[j].Target.Path(); pi != pj {
			return pi < pj
		}
		return groups[i].Target.Score() < groups[j].Target.Score()
	})
	return groups
}

// Executor performs the queued moves and reclaims emptied source
// directories.
type Executor struct {
	fs     Filesystem
	log    *log.Logger
	dryRun bool
}

// NewExecutor returns an executor working against fs.
func NewExecutor(fs Filesystem, logger *log.Logger, dryRun bool) *Executor {
	return &Executor{fs: fs, log: logger, dryRun: dryRun}
}

// Execute moves every file in the grouped queue. A failed move is
// reported and the batch continues; the failures are returned.
func (e *Executor) Execute(groups []Group) []*MoveError {
	var failed []*MoveError
	for _, g := range groups {
		target := g.Target.Path()
		for _, d := range g.Decisions {
			source := d.Action.SourcePath()
			if e.dryRun {
				e.log.Info("Would move", "source", source, "target", target)
				continue
			}
			e.log.Info("Moving", "source", source, "target", target)
			if err := e.fs.Move(source, target); err != nil {
				e.log.Error("Move failed", "source", source, "error", err)
				failed = append(failed, &MoveError{Source: source, Target: target, Err: err})
			}
		}
	}
	return failed
}

// Cleanup removes source subdirectories emptied by the moves. Each
// decision's immediate parent is tried first, then its ancestors up to
// but excluding the source root. Directories that still hold entries are
// left alone.
func (e *Executor) Cleanup(queue []Decision) {
	if e.dryRun {
		return
	}
	seen := make(map[string]bool)
	for _, d := range queue {
		parent := filepath.Dir(d.Action.Source())
		if parent == "." || parent == string(filepath.Separator) {
			continue
		}
		dir := filepath.Join(d.Action.Root(), parent)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		e.removeEmptyUpTo(dir, d.Action.Root())
	}
}

func (e *Executor) removeEmptyUpTo(dir, root string) {
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		if err := e.fs.RemoveIfEmpty(dir); err != nil {
			return // still holds files, no big deal
		}
		e.log.Debug("Removed empty directory", "dir", dir)
		dir = filepath.Dir(dir)
	}
}
