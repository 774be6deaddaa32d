// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strings"
)

// Mode selects the export output.
type Mode uint8

const (
	// Single renders the strip, or the only frame, into one PNG.
	Single Mode = iota

	// Batch crops every frame into its own PNG inside one archive.
	Batch
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Batch:
		return "batch"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "single" or "batch".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "batch":
		return Batch, nil
	}
	return 0, fmt.Errorf("export: unknown mode %q (want single or batch)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m > Batch {
		return nil, fmt.Errorf("export: invalid mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
