// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/mockup/export"
	"github.com/gogpu/mockup/session"
	"github.com/gogpu/mockup/stage"
)

func previewCmd(root *rootFlags) *cobra.Command {
	var (
		out    string
		scale  float64
		preset string
		clean  bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the strip as shown in the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, p, err := loadStore(root.project, preset)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("scale") {
				scale = p.Preview.Scale
			}
			surface := stage.New()
			if err := surface.SetScale(scale); err != nil {
				return err
			}
			if clean {
				for _, t := range stage.EditorOnly() {
					surface.SetVisible(t, false)
				}
			}

			sess := session.New(session.WithStore(st), session.WithStage(surface))
			defer func() { _ = sess.Close() }()
			if err := loadImages(cmd.Context(), sess, cmd.ErrOrStderr()); err != nil {
				return err
			}
			img, err := sess.Preview(cmd.Context())
			if err != nil {
				return err
			}
			data, err := export.EncodePNG(img)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec // previews are not secret
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "output file")
	cmd.Flags().Float64Var(&scale, "scale", 0.25, "display scale (default from project)")
	cmd.Flags().StringVar(&preset, "preset", "", "override the project preset (even, overlap, hero)")
	cmd.Flags().BoolVar(&clean, "clean", false, "hide guides and the selection outline")
	return cmd
}
