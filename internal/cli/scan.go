package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mydehq/shelve/internal/fsys"
	"github.com/mydehq/shelve/internal/organizer"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Report what sorting would do, without moving anything",
	Long: `Lists the target directories with the name elements the matcher
considers, then shows which source files have at least one candidate and
where each would go. Nothing is moved.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringArrayVarP(&flagSources, "source", "s", nil, "source root to scan (repeatable)")
	scanCmd.Flags().StringArrayVarP(&flagTargets, "target", "t", nil, "target root holding destination directories (repeatable)")
	scanCmd.Flags().IntVar(&flagThreshold, "threshold", organizer.DefaultLengthThreshold, "minimum word length considered in target names")
	scanCmd.Flags().BoolVar(&flagFlat, "flat", false, "do not descend into source subdirectories")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := sortConfig(cmd)
	if err != nil {
		return err
	}

	fs := &fsys.FS{Recursive: cfg.Recursive}
	for _, root := range cfg.TargetRoots {
		dirs, err := fs.ListDirs(root)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", StyleHeader.Render("Targets in"), StylePath.Render(root))
		for _, name := range dirs {
			c := organizer.NewCandidate(root, name, cfg.LengthThreshold)
			elements := strings.Join(c.Elements(), ", ")
			if elements == "" {
				elements = StyleDim.Render("(no matchable elements)")
			}
			fmt.Printf(" %s %s  %s\n", StyleDim.Render("-"), name, StyleDim.Render(elements))
		}
		fmt.Println()
	}

	org, err := buildOrganizer(cfg)
	if err != nil {
		return err
	}
	for _, target := range cfg.TargetRoots {
		if err := org.Calculate(target); err != nil {
			return err
		}
	}

	actions := org.Actions()
	if len(actions) == 0 {
		fmt.Println(StyleDim.Render("No source file matches any target."))
		return nil
	}

	fmt.Printf("%s\n", StyleHeader.Render(fmt.Sprintf("%d file(s) with a candidate:", len(actions))))
	for _, action := range actions {
		ranked := action.Ranked()
		best := ranked[0]
		score := fmt.Sprintf("(score: %d, ratio: %.2f)", best.Score(), best.Ratio())
		fmt.Printf(" %s %s %s %s %s\n",
			StyleDim.Render("-"),
			action.Source(),
			StyleDim.Render("->"),
			StylePath.Render(best.Path()),
			StyleScore.Render(score),
		)
	}
	return nil
}
