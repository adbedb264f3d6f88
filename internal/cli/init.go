package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mydehq/shelve/internal/config"
	"github.com/mydehq/shelve/internal/organizer"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Interactively create a " + config.DefaultFileName + " map file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	RootCmd.AddCommand(initCmd)
}

// runInit walks the user through source roots, target roots and the
// matching threshold, previews the YAML and saves it on confirmation.
func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	theme := shelveTheme()

	sources := absDir
	targets := ""
	thresholdStr := strconv.Itoa(organizer.DefaultLengthThreshold)
	recursive := true

	err = RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source roots").
				Description("\nDirectories holding the loose files (comma-separated)").
				Value(&sources).
				Validate(requireNonEmpty("at least one source root is required")),
			huh.NewInput().
				Title("Target roots").
				Description("\nDirectories whose subdirectories are the destinations (comma-separated)").
				Value(&targets).
				Validate(requireNonEmpty("at least one target root is required")),
			huh.NewInput().
				Title("Word length threshold").
				Description("\nMinimum word length considered in target names").
				Value(&thresholdStr).
				Validate(validateThreshold),
			huh.NewConfirm().
				Title("Scan source roots recursively?").
				Value(&recursive),
		),
	).WithTheme(theme).WithKeyMap(shelveKeyMap()))
	if err != nil {
		return initAbort(err)
	}

	threshold, _ := strconv.Atoi(strings.TrimSpace(thresholdStr))
	cfg := &config.Config{
		SourceRoots:     splitCommaList(sources),
		TargetRoots:     splitCommaList(targets),
		LengthThreshold: threshold,
		Recursive:       recursive,
	}

	preview, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	confirmed := true
	err = RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Map file preview").
				Description("\n"+string(preview)),
			huh.NewConfirm().
				Title("Save this configuration?").
				Value(&confirmed),
		),
	).WithTheme(theme).WithKeyMap(shelveKeyMap()))
	if err != nil {
		return initAbort(err)
	}
	if !confirmed {
		fmt.Println()
		logger.Info(StyleDim.Render("Init cancelled"))
		return nil
	}

	mapPath := filepath.Join(absDir, config.DefaultFileName)
	if err := config.Save(mapPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info(fmt.Sprintf("%s: %s", StyleHeader.Render("Created config"), StylePath.Render(mapPath)))
	return nil
}

// initAbort turns a form abort into a clean cancel.
func initAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println()
		logger.Info(StyleDim.Render("Init cancelled"))
		os.Exit(0)
	}
	return err
}

func requireNonEmpty(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

func validateThreshold(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// splitCommaList splits a comma-separated string into trimmed, non-empty
// parts.
func splitCommaList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
