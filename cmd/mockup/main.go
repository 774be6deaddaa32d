// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command mockup composes device mockup strips from a project file.
//
//	mockup export --project mockup.yaml --out dist --mode batch
//	mockup layout --project mockup.yaml
//	mockup preview --project mockup.yaml --out preview.png --scale 0.25
//	mockup devices
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/mockup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mockup:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	project string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:           "mockup",
		Short:         "Compose multi-frame device mockups",
		Version:       mockup.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
				mockup.SetLogger(slog.New(h))
			} else {
				mockup.SetLogger(nil)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&f.project, "project", "p", "mockup.yaml", "project file (yaml, toml or json)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(exportCmd(&f), layoutCmd(&f), previewCmd(&f), devicesCmd())
	return root
}
