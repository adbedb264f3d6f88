package organizer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// RuleScore is the sentinel fitness assigned to rule-forced candidates.
// It exceeds anything name matching can produce, so a rule match always
// ranks its target first.
const RuleScore = 9999

var wordRE = regexp.MustCompile(`\w+`)

// Candidate is one possible target directory for a source file.
//
// Candidates are immutable. The matching engine keeps a single unscored
// template per target directory and derives one scored copy per source
// file with WithScore, so actions never share mutable candidate state.
type Candidate struct {
	root     string
	name     string
	score    int
	elements []string
}

// NewCandidate returns an unscored candidate for the directory name under
// root. The name is split into lower-cased word elements exactly once, at
// construction; words shorter than lengthThreshold are dropped.
func NewCandidate(root, name string, lengthThreshold int) *Candidate {
	seen := make(map[string]bool)
	var elements []string
	for _, word := range wordRE.FindAllString(name, -1) {
		if utf8.RuneCountInString(word) < lengthThreshold {
			continue
		}
		word = strings.ToLower(word)
		if seen[word] {
			continue
		}
		seen[word] = true
		elements = append(elements, word)
	}
	sort.Strings(elements)
	return &Candidate{root: root, name: name, elements: elements}
}

// WithScore returns a copy of the candidate with its score set. The
// element split is shared between the copies; it never changes after
// construction.
func (c *Candidate) WithScore(score int) *Candidate {
	scored := *c
	scored.score = score
	return &scored
}

// Root returns the parent directory the candidate lives under.
func (c *Candidate) Root() string { return c.root }

// Name returns the candidate directory name.
func (c *Candidate) Name() string { return c.name }

// Score returns the fitness score against the action's source file.
func (c *Candidate) Score() int { return c.score }

// Path returns the full target directory path.
func (c *Candidate) Path() string { return filepath.Join(c.root, c.name) }

// Elements returns the word elements considered during matching.
func (c *Candidate) Elements() []string { return c.elements }

// Ratio is a secondary fitness estimate: the score relative to the
// number of matchable elements. Candidates without elements have no
// meaningful ratio and report zero.
func (c *Candidate) Ratio() float64 {
	if len(c.elements) == 0 {
		return 0
	}
	return float64(c.score) / float64(len(c.elements))
}

// scoreAgainst counts how many elements occur in the source path,
// case-insensitively.
func (c *Candidate) scoreAgainst(source string) int {
	lower := strings.ToLower(source)
	score := 0
	for _, element := range c.elements {
		if strings.Contains(lower, element) {
			score++
		}
	}
	return score
}

// candidateKey identifies a candidate. The same directory scored
// differently against two source files counts as two distinct
// candidates.
type candidateKey struct {
	root  string
	name  string
	score int
}

func (c *Candidate) key() candidateKey {
	return candidateKey{root: c.root, name: c.name, score: c.score}
}

func (c *Candidate) String() string {
	return fmt.Sprintf("<Candidate %q>", c.name)
}
