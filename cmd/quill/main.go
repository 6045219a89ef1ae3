package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quill/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill workspace analyzer",
	Long:  `Quill builds a semantic graph over a workspace of scripts: name resolution, type inference and diagnostics.`,
}

var (
	flagColor   string
	flagMaxDiag int
)

func main() {
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().IntVar(&flagMaxDiag, "max-diagnostics", 100, "maximum number of diagnostics to show")

	cobra.OnInitialize(configureColor)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureColor() {
	switch flagColor {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
