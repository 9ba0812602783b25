package entity

import (
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	// AbilitySlotCount is the number of ability slots on each gear piece.
	AbilitySlotCount = 4

	// AbilityRowCount is the total number of BuildAbility rows per build.
	AbilityRowCount = len(GearOrder) * AbilitySlotCount
)

// AbilityMatrix is a build's abilities in structured form: one row per gear
// piece in GearOrder, one column per slot.
type AbilityMatrix [len(GearOrder)][AbilitySlotCount]string

// InvalidAbilityRowsError reports a build whose stored ability rows do not
// form a complete matrix. This is a data integrity fault, not a user error.
type InvalidAbilityRowsError struct {
	Count int
}

func (e InvalidAbilityRowsError) Error() string {
	return fmt.Sprintf("build has %d ability rows, want %d", e.Count, AbilityRowCount)
}

// Complete reports whether every cell of the matrix is filled.
func (m AbilityMatrix) Complete() bool {
	for _, row := range m {
		for _, ability := range row {
			if ability == "" {
				return false
			}
		}
	}
	return true
}

// Rows flattens the matrix into the 12 normalized rows stored for buildID.
func (m AbilityMatrix) Rows(buildID int64) []BuildAbility {
	rows := make([]BuildAbility, 0, AbilityRowCount)
	for i, gear := range GearOrder {
		for slot := 0; slot < AbilitySlotCount; slot++ {
			rows = append(rows, BuildAbility{
				BuildID:  buildID,
				GearType: gear,
				Slot:     slot,
				Ability:  m[i][slot],
			})
		}
	}
	return rows
}

// AbilityMatrixOf rebuilds the structured matrix from stored rows. The
// database gives no ordering guarantee, so the rows are sorted by (gear
// rank, slot) before slicing them into matrix rows.
func AbilityMatrixOf(rows []BuildAbility) (AbilityMatrix, error) {
	var m AbilityMatrix
	if len(rows) != AbilityRowCount {
		return m, InvalidAbilityRowsError{Count: len(rows)}
	}

	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b BuildAbility) bool {
		if a.GearType != b.GearType {
			return GearRank(a.GearType) < GearRank(b.GearType)
		}
		return a.Slot < b.Slot
	})

	for i, row := range sorted {
		m[i/AbilitySlotCount][i%AbilitySlotCount] = row.Ability
	}

	return m, nil
}
