// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/mockup/device"
)

func devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List device silhouettes and their export sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, t := range device.Types() {
				m := device.MustLookup(t)
				w, h := device.AutoCanvasSize(m)
				size := func(p device.ExportPreset) string {
					s, _ := m.ExportSize(p)
					return s.String()
				}
				rows = append(rows, []string{
					string(t),
					m.Name + " " + m.Model,
					fmt.Sprintf("%gx%g", m.FrameWidth, m.FrameHeight),
					fmt.Sprintf("%gx%g", w, h),
					size(device.AppStore),
					size(device.PlayStore),
					size(device.Social),
				})
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"TYPE", "DEVICE", "FRAME", "CANVAS", "APP STORE", "PLAY STORE", "SOCIAL"}, rows))
			return err
		},
	}
}
