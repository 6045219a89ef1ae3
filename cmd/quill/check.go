package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/workspace"
)

var (
	checkFormat string
	checkPaths  string
	checkNotes  bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().StringVar(&checkPaths, "paths", "full", "path rendering (full|basename)")
	checkCmd.Flags().BoolVar(&checkNotes, "notes", true, "print attached notes")
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Load a workspace and report diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(args)
		if err != nil {
			return err
		}
		if err := w.Load(cmd.Context()); err != nil {
			return err
		}

		bag := w.Diagnostics()
		pathMode, err := parsePathMode(checkPaths)
		if err != nil {
			return err
		}

		switch checkFormat {
		case "json":
			err = diagfmt.JSON(cmd.OutOrStdout(), bag, w.Text, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     checkNotes,
				PathMode:         pathMode,
				Max:              flagMaxDiag,
			})
			if err != nil {
				return err
			}
		case "pretty":
			diagfmt.Pretty(cmd.OutOrStdout(), bag, w.Text, diagfmt.PrettyOpts{
				Color:     !color.NoColor,
				PathMode:  pathMode,
				ShowNotes: checkNotes,
			})
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", checkFormat)
		}

		if bag.HasErrors() {
			return fmt.Errorf("%d diagnostics", bag.Len())
		}
		return nil
	},
}

// openWorkspace prepares the workspace rooted at args[0], defaulting to the
// current directory, reading quill.toml when present.
func openWorkspace(args []string) (*workspace.Workspace, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(abs); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := workspace.LoadConfig(abs)
	if err != nil {
		return nil, err
	}
	if flagMaxDiag > 0 {
		cfg.MaxDiagnostics = flagMaxDiag
	}
	return workspace.New(abs, cfg), nil
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch s {
	case "full":
		return diagfmt.PathModeFull, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	default:
		return 0, fmt.Errorf("unsupported path mode %q (must be full or basename)", s)
	}
}
