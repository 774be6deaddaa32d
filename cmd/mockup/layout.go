// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/mockup/internal/project"
	"github.com/gogpu/mockup/store"
)

func layoutCmd(root *rootFlags) *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the slice geometry of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := loadStore(root.project, preset)
			if err != nil {
				return err
			}
			snap := st.Snapshot()
			l, err := snap.Layout()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, l.Len())
			for i, s := range l.Slices {
				f, _ := snap.Frame(s.ID)
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					string(f.Device),
					fmt.Sprintf("%g", s.X),
					fmt.Sprintf("%g", s.Width),
					fmt.Sprintf("%g", s.Height),
					s.Rect().String(),
				})
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprint(out, renderTable([]string{"#", "DEVICE", "X", "WIDTH", "HEIGHT", "CROP"}, rows)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("preset %s, total width %g, height %g",
				snap.Preset, l.TotalWidth, l.StageHeight)))
			return err
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "override the project preset (even, overlap, hero)")
	return cmd
}

// loadStore loads a project and builds its store, applying a preset
// override when given.
func loadStore(path, preset string) (*store.Store, project.Project, error) {
	p, err := project.Load(path)
	if err != nil {
		return nil, project.Project{}, err
	}
	if preset != "" {
		p.Preset = preset
	}
	st, err := p.Build()
	if err != nil {
		return nil, project.Project{}, err
	}
	return st, p, nil
}
