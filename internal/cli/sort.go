package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mydehq/shelve/internal/config"
	"github.com/mydehq/shelve/internal/fsys"
	"github.com/mydehq/shelve/internal/organizer"
	"github.com/mydehq/shelve/internal/ui"
)

var (
	flagSources   []string
	flagTargets   []string
	flagRules     []string
	flagThreshold int
	flagAuto      bool
	flagYes       bool
	flagFlat      bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Match source files against target directories and move them",
	Long: `Scores every source file against the immediate subdirectories of the
target roots and moves each file into its best-matching directory. On a
terminal every pairing is confirmed interactively; otherwise the top
candidate is taken automatically.`,
	Args: cobra.NoArgs,
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringArrayVarP(&flagSources, "source", "s", nil, "source root to sort (repeatable)")
	sortCmd.Flags().StringArrayVarP(&flagTargets, "target", "t", nil, "target root holding destination directories (repeatable)")
	sortCmd.Flags().StringArrayVarP(&flagRules, "rule", "r", nil, "override rule PATTERN=/absolute/target (repeatable)")
	sortCmd.Flags().IntVar(&flagThreshold, "threshold", organizer.DefaultLengthThreshold, "minimum word length considered in target names")
	sortCmd.Flags().BoolVar(&flagAuto, "auto", false, "pick the best candidate without asking")
	sortCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the final plan confirmation")
	sortCmd.Flags().BoolVar(&flagFlat, "flat", false, "do not descend into source subdirectories")
	RootCmd.AddCommand(sortCmd)
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := sortConfig(cmd)
	if err != nil {
		return err
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

	interactive := !flagAuto && isatty.IsTerminal(os.Stdin.Fd())
	var resolver organizer.Resolver = organizer.AutomaticResolver{}
	var confirm organizer.ConfirmPlan
	if interactive {
		resolver = organizer.NewInteractiveResolver(ui.NewLinePrompter(os.Stdin, os.Stdout), os.Stdout)
		if !flagYes {
			confirm = confirmPlan
		}
	}
	return org.Run(resolver, confirm)
}

// sortConfig merges the map file with the sort flags and validates the
// result.
func sortConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if len(flagSources) > 0 {
		cfg.SourceRoots = flagSources
	}
	if len(flagTargets) > 0 {
		cfg.TargetRoots = flagTargets
	}
	if cmd.Flags().Changed("threshold") {
		cfg.LengthThreshold = flagThreshold
	}
	if flagFlat {
		cfg.Recursive = false
	}
	if len(flagRules) > 0 {
		rules, err := parseRules(flagRules)
		if err != nil {
			return nil, err
		}
		if cfg.Rules == nil {
			cfg.Rules = make(map[string]string)
		}
		for pattern, target := range rules {
			cfg.Rules[pattern] = target
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.TargetRoots) == 0 {
		return nil, errors.New("no target roots configured, use --target or the map file")
	}
	return cfg, nil
}

func buildOrganizer(cfg *config.Config) (*organizer.Organizer, error) {
	fs := &fsys.FS{Recursive: cfg.Recursive}
	opts := []organizer.Option{
		organizer.WithSourceRoots(cfg.SourceRoots...),
		organizer.WithRules(cfg.Rules),
		organizer.WithLengthThreshold(cfg.LengthThreshold),
		organizer.WithLogger(logger),
	}
	if flagDryRun {
		opts = append(opts, organizer.WithDryRun())
	}
	return organizer.New(fs, opts...), nil
}

func parseRules(specs []string) (map[string]string, error) {
	rules := make(map[string]string, len(specs))
	for _, spec := range specs {
		pattern, target, ok := strings.Cut(spec, "=")
		if !ok || pattern == "" || target == "" {
			return nil, fmt.Errorf("invalid rule %q, want PATTERN=/absolute/target", spec)
		}
		rules[pattern] = target
	}
	return rules, nil
}

// confirmPlan renders the grouped queue and asks once before anything
// moves. Declining discards the whole queue.
func confirmPlan(groups []organizer.Group) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Queued actions:"))
	for _, g := range groups {
		fmt.Println()
		for _, d := range g.Decisions {
			fmt.Printf(" %s %s\n", StyleDim.Render("-"), d.Action.Source())
		}
		fmt.Printf(" %s %s\n", StyleDim.Render("->"), StylePath.Render(g.Target.Path()))
	}
	fmt.Println()

	perform := false
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Perform these moves?").
				Value(&perform),
		),
	).WithTheme(shelveTheme()).WithKeyMap(shelveKeyMap()))
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return perform, nil
}
