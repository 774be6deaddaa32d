// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/mockup/export"
	"github.com/gogpu/mockup/imageload"
	"github.com/gogpu/mockup/session"
)

type exportFlags struct {
	out       string
	mode      string
	preset    string
	fullStrip bool
	timeout   time.Duration
}

func exportCmd(root *rootFlags) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project as one PNG or a ZIP of per-frame PNGs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, p, err := loadStore(root.project, f.preset)
			if err != nil {
				return err
			}
			if f.mode != "" {
				p.Export.Mode = f.mode
			}
			mode, err := p.ExportMode()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("full-strip") {
				p.Export.FullStrip = f.fullStrip
			}
			out := p.OutDir()
			if f.out != "" {
				out = f.out
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
			defer cancel()

			sess := session.New(
				session.WithStore(st),
				session.WithPipeline(export.New(export.WithFullStrip(p.Export.FullStrip))),
			)
			defer func() { _ = sess.Close() }()

			if err := loadImages(ctx, sess, cmd.ErrOrStderr()); err != nil {
				return err
			}
			res, err := sess.Export(ctx, mode)
			if err != nil {
				return err
			}
			path, err := res.Save(out)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default from project)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "single or batch (default from project)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "override the project preset (even, overlap, hero)")
	cmd.Flags().BoolVar(&f.fullStrip, "full-strip", false, "add the uncut strip to batch archives")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 2*time.Minute, "give up after this long")
	return cmd
}

// loadImages waits for every screenshot and reports the ones that failed.
// Failed frames export with a placeholder screen.
func loadImages(ctx context.Context, sess *session.Session, warn io.Writer) error {
	if err := sess.Refresh(); err != nil {
		return err
	}
	if err := sess.WaitImages(ctx); err != nil {
		return err
	}
	for i, id := range sess.Store().Snapshot().IDs() {
		if st := sess.Images().Status(id); st.State == imageload.Failed {
			fmt.Fprintf(warn, "warning: frame %d: screenshot %s not loaded: %v\n", i+1, st.Source, st.Err)
		}
	}
	return nil
}
