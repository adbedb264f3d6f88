package organizer

import (
	"path/filepath"
	"sort"
)

// Action is a source file together with its scored target candidates.
// Actions persist across calculation passes: scoring the same source
// against another target root extends the candidate set instead of
// replacing it.
type Action struct {
	source     string
	root       string
	candidates map[candidateKey]*Candidate
}

// NewAction returns an action for the source path relative to root, with
// an empty candidate set.
func NewAction(source, root string) *Action {
	return &Action{
		source:     source,
		root:       root,
		candidates: make(map[candidateKey]*Candidate),
	}
}

// Source returns the root-relative source path.
func (a *Action) Source() string { return a.source }

// Root returns the source root the action was found under.
func (a *Action) Root() string { return a.root }

// SourcePath returns the full path of the source file.
func (a *Action) SourcePath() string { return filepath.Join(a.root, a.source) }

// Add inserts a scored candidate. Duplicate (root, name, score) triples
// are kept once.
func (a *Action) Add(c *Candidate) {
	a.candidates[c.key()] = c
}

// HasCandidates reports whether any candidate scored at all.
func (a *Action) HasCandidates() bool { return len(a.candidates) > 0 }

// Ranked returns the candidates ordered by fitness: score descending,
// then ratio descending, then name ascending so equal scores stay
// deterministic.
func (a *Action) Ranked() []*Candidate {
	ranked := make([]*Candidate, 0, len(a.candidates))
	for _, c := range a.candidates {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ri, rj := ranked[i].Ratio(), ranked[j].Ratio(); ri != rj {
			return ri > rj
		}
		if ranked[i].name != ranked[j].name {
			return ranked[i].name < ranked[j].name
		}
		return ranked[i].root < ranked[j].root
	})
	return ranked
}
