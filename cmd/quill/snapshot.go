package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var snapshotOut string

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "quill.snapshot", "output file")
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [dir]",
	Short: "Serialize the resolved workspace graph",
	Long:  `Loads and resolves a workspace, then writes its semantic graph as a msgpack snapshot for external tooling.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace(args)
		if err != nil {
			return err
		}
		if err := w.Load(cmd.Context()); err != nil {
			return err
		}

		out, err := os.Create(snapshotOut)
		if err != nil {
			return err
		}
		if err := w.WriteSnapshot(out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", snapshotOut)
		if bag := w.Diagnostics(); bag.HasErrors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: snapshot taken with %d diagnostics, run `quill check` for details\n", bag.Len())
		}
		return nil
	},
}
