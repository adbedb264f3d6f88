package organizer_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mydehq/shelve/internal/organizer"
)

// fakeFS is an in-memory Filesystem for engine and executor tests.
type fakeFS struct {
	dirs    map[string][]string // target root -> subdirectory names
	files   map[string][]string // source root -> relative file paths
	moveErr map[string]error    // source path -> injected failure

	moves   [][2]string // recorded (source, targetDir) pairs
	removed []string    // recorded RemoveIfEmpty calls that succeeded
	empty   map[string]bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		dirs:    make(map[string][]string),
		files:   make(map[string][]string),
		moveErr: make(map[string]error),
		empty:   make(map[string]bool),
	}
}

func (f *fakeFS) ListDirs(root string) ([]string, error) {
	dirs, ok := f.dirs[root]
	if !ok {
		return nil, fmt.Errorf("no such directory %q", root)
	}
	return dirs, nil
}

func (f *fakeFS) ListFiles(root string) ([]string, error) {
	files, ok := f.files[root]
	if !ok {
		return nil, fmt.Errorf("no such directory %q", root)
	}
	return files, nil
}

func (f *fakeFS) Move(source, targetDir string) error {
	if err := f.moveErr[source]; err != nil {
		return err
	}
	f.moves = append(f.moves, [2]string{source, targetDir})
	return nil
}

func (f *fakeFS) RemoveIfEmpty(dir string) error {
	if !f.empty[dir] {
		return fmt.Errorf("%q is not empty", dir)
	}
	f.removed = append(f.removed, dir)
	return nil
}

func discard() *log.Logger { return log.New(io.Discard) }

func TestCalculateScoresByNameSimilarity(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Tolkien Collection", "Science"}
	fs.files["/src"] = []string{"tolkien_hobbit.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	actions := org.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions; want 1", len(actions))
	}
	ranked := actions[0].Ranked()
	if len(ranked) != 1 {
		t.Fatalf("got %d candidates; want 1 (Science must not score)", len(ranked))
	}
	if ranked[0].Name() != "Tolkien Collection" || ranked[0].Score() != 1 {
		t.Errorf("top candidate = %q (score %d); want %q (score 1)",
			ranked[0].Name(), ranked[0].Score(), "Tolkien Collection")
	}
}

func TestCalculateRuleInjectsSentinelCandidate(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Tolkien Collection"}
	fs.files["/src"] = []string{"tolkien_hobbit.pdf"}

	org := organizer.New(fs,
		organizer.WithLogger(discard()),
		organizer.WithRules(map[string]string{"tolkien": "/books/others"}),
	)
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	actions := org.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions; want 1", len(actions))
	}
	ranked := actions[0].Ranked()
	if ranked[0].Root() != "/books" || ranked[0].Name() != "others" {
		t.Errorf("top candidate = %s/%s; want /books/others", ranked[0].Root(), ranked[0].Name())
	}
	if ranked[0].Score() != organizer.RuleScore {
		t.Errorf("rule candidate score = %d; want %d", ranked[0].Score(), organizer.RuleScore)
	}
}

func TestCalculateDropsActionsWithoutCandidates(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}
	fs.files["/src"] = []string{"unrelated_notes.txt", "science_intro.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	actions := org.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions; want 1", len(actions))
	}
	if actions[0].Source() != "science_intro.pdf" {
		t.Errorf("kept action %q; want science_intro.pdf", actions[0].Source())
	}
}

func TestCalculateIsAdditiveAcrossTargetRoots(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst1"] = []string{"Tolkien Collection"}
	fs.dirs["/dst2"] = []string{"Hobbit Movies"}
	fs.files["/src"] = []string{"tolkien_hobbit.pdf"}

	org := organizer.New(fs,
		organizer.WithLogger(discard()),
		organizer.WithSourceRoots("/src"),
	)
	if err := org.Calculate("/dst1"); err != nil {
		t.Fatalf("first Calculate failed: %v", err)
	}
	if err := org.Calculate("/dst2"); err != nil {
		t.Fatalf("second Calculate failed: %v", err)
	}

	actions := org.Actions()
	if len(actions) != 1 {
		t.Fatalf("got %d actions; want 1 merged action", len(actions))
	}
	ranked := actions[0].Ranked()
	if len(ranked) != 2 {
		t.Fatalf("got %d candidates; want candidates from both passes", len(ranked))
	}
	roots := map[string]bool{ranked[0].Root(): true, ranked[1].Root(): true}
	if !roots["/dst1"] || !roots["/dst2"] {
		t.Errorf("candidate roots = %v; want both /dst1 and /dst2", roots)
	}
}

func TestCalculateWithoutSourceRoots(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	err := org.Calculate("/dst")
	if !errors.Is(err, organizer.ErrNoSourceRoots) {
		t.Errorf("Calculate() error = %v; want ErrNoSourceRoots", err)
	}
}

func TestCalculateCaseInsensitiveMatching(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"TOLKIEN"}
	fs.files["/src"] = []string{"Tolkien_Silmarillion.epub"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(org.Actions()) != 1 {
		t.Fatal("case-insensitive match produced no action")
	}
}

func TestActionsSortedBySourcePath(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}
	fs.files["/src"] = []string{"science_b.pdf", "science_a.pdf", "science_c.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	want := []string{"science_a.pdf", "science_b.pdf", "science_c.pdf"}
	for i, action := range org.Actions() {
		if action.Source() != want[i] {
			t.Errorf("Actions()[%d] = %q; want %q", i, action.Source(), want[i])
		}
	}
}

func TestResolveCommitsInVisitationOrder(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}
	fs.files["/src"] = []string{"science_b.pdf", "science_a.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	queue, err := org.Resolve(organizer.AutomaticResolver{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("got %d decisions; want 2", len(queue))
	}
	if queue[0].Action.Source() != "science_a.pdf" || queue[1].Action.Source() != "science_b.pdf" {
		t.Errorf("queue order = %q, %q; want ascending source order",
			queue[0].Action.Source(), queue[1].Action.Source())
	}
}

func TestRunAutomaticMovesEverything(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Tolkien Collection", "Science"}
	fs.files["/src"] = []string{"tolkien_hobbit.pdf", "science_intro.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if err := org.Run(organizer.AutomaticResolver{}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fs.moves) != 2 {
		t.Fatalf("got %d moves; want 2", len(fs.moves))
	}
	moved := map[string]string{}
	for _, m := range fs.moves {
		moved[m[0]] = m[1]
	}
	if moved["/src/tolkien_hobbit.pdf"] != "/dst/Tolkien Collection" {
		t.Errorf("tolkien_hobbit.pdf moved to %q", moved["/src/tolkien_hobbit.pdf"])
	}
	if moved["/src/science_intro.pdf"] != "/dst/Science" {
		t.Errorf("science_intro.pdf moved to %q", moved["/src/science_intro.pdf"])
	}
}

func TestRunDecliningPlanMovesNothing(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}
	fs.files["/src"] = []string{"science_a.pdf", "science_b.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	var sawGroups int
	decline := func(groups []organizer.Group) (bool, error) {
		sawGroups = len(groups)
		return false, nil
	}
	if err := org.Run(organizer.AutomaticResolver{}, decline); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sawGroups != 1 {
		t.Errorf("plan had %d groups; want 1 (both files share a target)", sawGroups)
	}
	if len(fs.moves) != 0 {
		t.Errorf("declined plan still moved %d files", len(fs.moves))
	}
}

func TestRunQuitCommitsNothing(t *testing.T) {
	fs := newFakeFS()
	fs.dirs["/dst"] = []string{"Science"}
	fs.files["/src"] = []string{"science_a.pdf", "science_b.pdf"}

	org := organizer.New(fs, organizer.WithLogger(discard()))
	if err := org.Calculate("/dst", "/src"); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	// Accept the first action, quit at the second.
	prompter := &scriptPrompter{answers: []string{"y", "q"}}
	resolver := organizer.NewInteractiveResolver(prompter, io.Discard)
	if err := org.Run(resolver, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(fs.moves) != 0 {
		t.Errorf("quit during resolution still moved %d files", len(fs.moves))
	}
}
