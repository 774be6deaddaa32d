// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package project loads mockup project files.
//
// A project file describes the frames of one strip and how to export it.
// YAML, TOML and JSON are accepted; the format follows the file extension.
// Env vars with prefix MOCKUP_ override top-level keys, for example
// MOCKUP_PRESET=hero or MOCKUP_EXPORT_MODE=single.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gogpu/mockup/device"
	"github.com/gogpu/mockup/export"
	"github.com/gogpu/mockup/layout"
	"github.com/gogpu/mockup/store"
)

// Project is the decoded project file.
type Project struct {
	Preset     string
	Canvas     CanvasConfig
	Background BackgroundConfig
	Export     ExportConfig
	Preview    PreviewConfig
	Frames     []FrameConfig

	// Dir is the directory relative screenshot paths resolve against.
	Dir string `mapstructure:"-"`
}

// CanvasConfig selects the canvas size. Zero values mean automatic; a
// named preset wins over explicit sizes.
type CanvasConfig struct {
	Preset string
	Width  int
	Height int
}

// BackgroundConfig is the strip background.
type BackgroundConfig struct {
	Kind   string
	Color1 string
	Color2 string
	Angle  float64
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Mode      string
	Out       string
	FullStrip bool `mapstructure:"full_strip"`
}

// PreviewConfig holds preview settings.
type PreviewConfig struct {
	Scale float64
}

// FrameConfig is one frame.
type FrameConfig struct {
	Device     string
	Screenshot string
	Headline   string
	Subtitle   string
	ShowDevice *bool   `mapstructure:"show_device"`
	Layout     string  // quick layout name
	Scale      float64 // 0 keeps the quick layout or identity scale
	Rotation   float64
	OffsetX    float64 `mapstructure:"offset_x"`
	OffsetY    float64 `mapstructure:"offset_y"`
	FlipX      bool    `mapstructure:"flip_x"`
	FlipY      bool    `mapstructure:"flip_y"`
}

// Load reads a project file. Env var overrides use prefix MOCKUP_.
func Load(path string) (Project, error) {
	v := viper.New()

	v.SetDefault("preset", layout.Even.String())
	v.SetDefault("background.kind", string(store.Gradient))
	v.SetDefault("background.color1", store.DefaultBackground().Color1)
	v.SetDefault("background.color2", store.DefaultBackground().Color2)
	v.SetDefault("background.angle", store.DefaultBackground().Angle)
	v.SetDefault("export.mode", export.Batch.String())
	v.SetDefault("export.out", ".")
	v.SetDefault("export.full_strip", false)
	v.SetDefault("preview.scale", 0.25)

	v.SetConfigFile(path)

	v.SetEnvPrefix("MOCKUP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return Project{}, fmt.Errorf("read project %s: %w", path, err)
	}

	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return Project{}, fmt.Errorf("unmarshal project: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Project{}, fmt.Errorf("resolve project path: %w", err)
	}
	p.Dir = filepath.Dir(abs)
	if len(p.Frames) == 0 {
		p.Frames = []FrameConfig{{Device: string(device.Default)}}
	}
	return p, nil
}

// ExportMode parses the configured export mode.
func (p Project) ExportMode() (export.Mode, error) {
	return export.ParseMode(p.Export.Mode)
}

// ParsePreset parses a preset name and suggests the closest one on typos.
func ParsePreset(s string) (layout.Preset, error) {
	pr, err := layout.ParsePreset(s)
	if err != nil {
		if hint := device.Suggest(s, layout.Names()); hint != "" {
			return 0, fmt.Errorf("%w (did you mean %q?)", err, hint)
		}
		return 0, err
	}
	if !pr.Selectable() {
		return 0, fmt.Errorf("%w: %s", store.ErrPresetUnsupported, pr)
	}
	return pr, nil
}

// Build creates a store holding the project's frames.
func (p Project) Build(opts ...store.Option) (*store.Store, error) {
	st := store.New(opts...)

	pr, err := ParsePreset(p.Preset)
	if err != nil {
		return nil, err
	}
	if err := st.SetPreset(pr); err != nil {
		return nil, err
	}
	if err := p.applyCanvas(st); err != nil {
		return nil, err
	}
	bg, err := p.background()
	if err != nil {
		return nil, err
	}
	st.SetBackground(bg)

	for i, fc := range p.Frames {
		typ := device.Default
		if fc.Device != "" {
			if typ, err = device.ParseType(fc.Device); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i+1, err)
			}
		}
		var id string
		if i == 0 {
			id = st.ActiveID()
			err = st.SetDevice(id, typ)
		} else {
			id, err = st.Append(typ)
		}
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		if err := p.applyFrame(st, id, fc); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	if ids := st.Snapshot().IDs(); len(ids) > 0 {
		_ = st.SetActive(ids[0])
	}
	return st, nil
}

func (p Project) applyCanvas(st *store.Store) error {
	c := p.Canvas
	if c.Preset != "" && !strings.EqualFold(c.Preset, "auto") {
		cp, ok := device.FindCanvasPreset(c.Preset)
		if !ok {
			labels := make([]string, 0, len(device.CanvasPresets()))
			for _, cp := range device.CanvasPresets() {
				labels = append(labels, strings.ToLower(cp.Label))
			}
			if hint := device.Suggest(c.Preset, labels); hint != "" {
				return fmt.Errorf("unknown canvas preset %q (did you mean %q?)", c.Preset, hint)
			}
			return fmt.Errorf("unknown canvas preset %q", c.Preset)
		}
		w, h := cp.Width, cp.Height
		return st.SetCanvasSize(&w, &h)
	}
	var w, h *int
	if c.Width != 0 {
		w = &c.Width
	}
	if c.Height != 0 {
		h = &c.Height
	}
	return st.SetCanvasSize(w, h)
}

func (p Project) background() (store.Background, error) {
	b := store.Background{
		Kind:   store.BackgroundKind(strings.ToLower(p.Background.Kind)),
		Color1: p.Background.Color1,
		Color2: p.Background.Color2,
		Angle:  p.Background.Angle,
	}
	switch b.Kind {
	case store.Solid, store.Gradient:
		return b, nil
	}
	return store.Background{}, fmt.Errorf("unknown background kind %q (want solid or gradient)", p.Background.Kind)
}

func (p Project) applyFrame(st *store.Store, id string, fc FrameConfig) error {
	if err := st.SetScreenshot(id, p.resolve(fc.Screenshot)); err != nil {
		return err
	}
	if fc.Headline != "" {
		if err := st.Apply(store.SetText{FrameID: id, Kind: store.Headline, Text: fc.Headline}); err != nil {
			return err
		}
	}
	if fc.Subtitle != "" {
		if err := st.Apply(store.SetText{FrameID: id, Kind: store.Subtitle, Text: fc.Subtitle}); err != nil {
			return err
		}
	}
	if fc.Layout != "" {
		if err := st.Apply(store.QuickLayoutIntent{FrameID: id, Name: fc.Layout}); err != nil {
			if hint := device.Suggest(fc.Layout, store.QuickLayoutNames()); hint != "" {
				return fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
			return err
		}
	}
	return st.Update(id, func(f *store.Frame) {
		if fc.ShowDevice != nil {
			f.ShowDevice = *fc.ShowDevice
		}
		if fc.Scale > 0 {
			f.Transform.Scale = fc.Scale
		}
		f.Transform.Rotation += fc.Rotation
		f.Transform.OffsetX += fc.OffsetX
		f.Transform.OffsetY += fc.OffsetY
		f.Transform.FlipX = f.Transform.FlipX != fc.FlipX
		f.Transform.FlipY = f.Transform.FlipY != fc.FlipY
	})
}

// resolve makes relative screenshot paths relative to the project file.
func (p Project) resolve(src string) string {
	if src == "" || strings.HasPrefix(src, "data:") || strings.Contains(src, "://") || filepath.IsAbs(src) {
		return src
	}
	if p.Dir == "" {
		return src
	}
	return filepath.Join(p.Dir, src)
}

// OutDir returns the export directory, relative to the working directory
// unless absolute.
func (p Project) OutDir() string {
	if p.Export.Out == "" {
		return "."
	}
	return os.ExpandEnv(p.Export.Out)
}
