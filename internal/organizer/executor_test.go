package organizer_test

import (
	"errors"
	"testing"

	"github.com/mydehq/shelve/internal/organizer"
)

func decisionFor(source, root, targetRoot, targetName string, score int) organizer.Decision {
	action := organizer.NewAction(source, root)
	target := organizer.NewCandidate(targetRoot, targetName, 3).WithScore(score)
	action.Add(target)
	return organizer.Decision{Action: action, Target: target}
}

func TestGroupByTarget(t *testing.T) {
	queue := []organizer.Decision{
		decisionFor("tolkien_hobbit.pdf", "/src", "/dst", "Tolkien Collection", 1),
		decisionFor("science_intro.pdf", "/src", "/dst", "Science", 1),
		decisionFor("tolkien_silmarillion.pdf", "/src", "/dst", "Tolkien Collection", 1),
	}

	groups := organizer.GroupByTarget(queue)
	if len(groups) != 2 {
		t.Fatalf("got %d groups; want 2", len(groups))
	}
	// Groups come out sorted by target path.
	if groups[0].Target.Name() != "Science" || groups[1].Target.Name() != "Tolkien Collection" {
		t.Fatalf("group order = %q, %q", groups[0].Target.Name(), groups[1].Target.Name())
	}
	// Queue order is preserved inside a group.
	tolkien := groups[1].Decisions
	if len(tolkien) != 2 ||
		tolkien[0].Action.Source() != "tolkien_hobbit.pdf" ||
		tolkien[1].Action.Source() != "tolkien_silmarillion.pdf" {
		t.Errorf("tolkien group lost queue order: %v", tolkien)
	}
}

func TestExecuteContinuesAfterMoveFailure(t *testing.T) {
	fs := newFakeFS()
	fs.moveErr["/src/science_a.pdf"] = errors.New("disk detached")

	queue := []organizer.Decision{
		decisionFor("science_a.pdf", "/src", "/dst", "Science", 1),
		decisionFor("science_b.pdf", "/src", "/dst", "Science", 1),
	}
	executor := organizer.NewExecutor(fs, discard(), false)
	failed := executor.Execute(organizer.GroupByTarget(queue))

	if len(failed) != 1 {
		t.Fatalf("got %d failures; want 1", len(failed))
	}
	var moveErr *organizer.MoveError
	if !errors.As(failed[0], &moveErr) {
		t.Fatalf("failure is %T; want *MoveError", failed[0])
	}
	if moveErr.Source != "/src/science_a.pdf" {
		t.Errorf("failure source = %q", moveErr.Source)
	}
	if len(fs.moves) != 1 || fs.moves[0][0] != "/src/science_b.pdf" {
		t.Errorf("sibling move did not continue: %v", fs.moves)
	}
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	fs := newFakeFS()
	queue := []organizer.Decision{
		decisionFor("science_a.pdf", "/src", "/dst", "Science", 1),
	}
	executor := organizer.NewExecutor(fs, discard(), true)
	if failed := executor.Execute(organizer.GroupByTarget(queue)); len(failed) != 0 {
		t.Fatalf("dry run reported failures: %v", failed)
	}
	if len(fs.moves) != 0 {
		t.Errorf("dry run moved %d files", len(fs.moves))
	}
}

func TestCleanupRemovesEmptyAncestors(t *testing.T) {
	fs := newFakeFS()
	fs.empty["/src/sub/deep"] = true
	fs.empty["/src/sub"] = true

	queue := []organizer.Decision{
		decisionFor("sub/deep/tolkien_hobbit.pdf", "/src", "/dst", "Tolkien Collection", 1),
	}
	executor := organizer.NewExecutor(fs, discard(), false)
	executor.Cleanup(queue)

	want := []string{"/src/sub/deep", "/src/sub"}
	if len(fs.removed) != len(want) {
		t.Fatalf("removed %v; want %v", fs.removed, want)
	}
	for i := range want {
		if fs.removed[i] != want[i] {
			t.Errorf("removed[%d] = %q; want %q", i, fs.removed[i], want[i])
		}
	}
}

func TestCleanupStopsAtNonEmptyDirectory(t *testing.T) {
	fs := newFakeFS()
	fs.empty["/src/sub/deep"] = true
	// /src/sub still holds other files.

	queue := []organizer.Decision{
		decisionFor("sub/deep/tolkien_hobbit.pdf", "/src", "/dst", "Tolkien Collection", 1),
	}
	executor := organizer.NewExecutor(fs, discard(), false)
	executor.Cleanup(queue)

	if len(fs.removed) != 1 || fs.removed[0] != "/src/sub/deep" {
		t.Errorf("removed %v; want only /src/sub/deep", fs.removed)
	}
}

func TestCleanupSkipsTopLevelSources(t *testing.T) {
	fs := newFakeFS()
	fs.empty["/src"] = true // even an empty source root must survive

	queue := []organizer.Decision{
		decisionFor("tolkien_hobbit.pdf", "/src", "/dst", "Tolkien Collection", 1),
	}
	executor := organizer.NewExecutor(fs, discard(), false)
	executor.Cleanup(queue)

	if len(fs.removed) != 0 {
		t.Errorf("cleanup removed %v; want nothing for top-level files", fs.removed)
	}
}
