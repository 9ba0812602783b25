package migration

import (
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

// migrate0001 rewrites every modes column through the ModeSet codec. Rows
// written before the codec sorted the set may store the same modes in a
// different order, which breaks equality of the serialized column.
func migrate0001(ctx xcontext.Context) error {
	builds := []entity.Build{}
	if err := ctx.DB().Find(&builds).Error; err != nil {
		return err
	}

	for i := range builds {
		if len(builds[i].Modes) == 0 {
			continue
		}

		err := ctx.DB().
			Model(&entity.Build{}).
			Where("id=?", builds[i].ID).
			Update("modes", builds[i].Modes).Error
		if err != nil {
			return err
		}
	}

	return nil
}
