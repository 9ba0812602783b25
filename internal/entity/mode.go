package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/splatbuilds/backend/pkg/enum"
	"golang.org/x/exp/slices"
)

type GameMode string

var (
	ModeTurfWar      = enum.New(GameMode("TW"))
	ModeSplatZones   = enum.New(GameMode("SZ"))
	ModeTowerControl = enum.New(GameMode("TC"))
	ModeRainmaker    = enum.New(GameMode("RM"))
	ModeClamBlitz    = enum.New(GameMode("CB"))
)

// modeOrder fixes the canonical order of serialized mode sets. Two builds
// restricted to the same modes always store the same modes column, whatever
// order the client sent them in.
var modeOrder = map[GameMode]int{
	ModeTurfWar:      0,
	ModeSplatZones:   1,
	ModeTowerControl: 2,
	ModeRainmaker:    3,
	ModeClamBlitz:    4,
}

func ModeRank(m GameMode) int {
	rank, ok := modeOrder[m]
	if !ok {
		return len(modeOrder)
	}
	return rank
}

// ModeSet is the set of modes a build is restricted to. It is stored as a
// comma separated column; an empty set is stored as NULL and means the build
// applies to every mode.
type ModeSet []GameMode

func (s ModeSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(s)
	slices.SortFunc(sorted, func(a, b GameMode) bool {
		return ModeRank(a) < ModeRank(b)
	})

	parts := make([]string, len(sorted))
	for i, mode := range sorted {
		parts[i] = string(mode)
	}

	return strings.Join(parts, ","), nil
}

func (s *ModeSet) Scan(obj any) error {
	switch t := obj.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		return s.scanString(t)
	case []byte:
		return s.scanString(string(t))
	}

	return fmt.Errorf("cannot scan invalid data type %T", obj)
}

func (s *ModeSet) scanString(value string) error {
	if value == "" {
		*s = nil
		return nil
	}

	parts := strings.Split(value, ",")
	modes := make(ModeSet, len(parts))
	for i, part := range parts {
		modes[i] = GameMode(part)
	}

	*s = modes
	return nil
}
