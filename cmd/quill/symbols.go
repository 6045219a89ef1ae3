package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quill/internal/hir"
)

var symbolsRoot string

func init() {
	symbolsCmd.Flags().StringVar(&symbolsRoot, "root", "", "workspace root (defaults to the file's directory)")
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file> <offset>",
	Short: "List the symbols visible at a byte offset",
	Long:  `Loads the workspace around a file and walks the scope chain from the given byte offset, printing every symbol a reference written there could resolve to, nearest first.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		offset64, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("offset %q: %w", args[1], err)
		}
		offset := uint32(offset64)

		root := symbolsRoot
		if root == "" {
			root = filepath.Dir(file)
		}
		w, err := openWorkspace([]string{root})
		if err != nil {
			return err
		}
		if err := w.Load(cmd.Context()); err != nil {
			return err
		}

		url := "file://" + filepath.ToSlash(file)
		var walkErr error
		w.Read(func(h *hir.Hir) {
			src, ok := h.SourceByURL(url)
			if !ok {
				walkErr = fmt.Errorf("%s is not part of the workspace", args[0])
				return
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			for sym := range h.VisibleSymbolsFromOffset(src, offset) {
				data := h.SymbolData(sym)
				name := data.Name()
				if name == "" {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, data.KindName(), h.FormatType(data.Ty))
			}
			walkErr = tw.Flush()
		})
		return walkErr
	},
}
