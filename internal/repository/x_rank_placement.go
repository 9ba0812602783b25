package repository

import (
	"database/sql"

	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/pkg/xcontext"
)

// WeaponStat is the per-weapon aggregate of the placement ladder joined into
// build listings.
type WeaponStat struct {
	WeaponID int
	MinRank  sql.NullInt64
	MaxPower sql.NullFloat64
}

type XRankPlacementRepository interface {
	Create(ctx xcontext.Context, data *entity.XRankPlacement) error
	StatsByWeaponIDs(ctx xcontext.Context, weaponIDs []int) ([]WeaponStat, error)
}

type xRankPlacementRepository struct{}

func NewXRankPlacementRepository() XRankPlacementRepository {
	return &xRankPlacementRepository{}
}

func (r *xRankPlacementRepository) Create(ctx xcontext.Context, data *entity.XRankPlacement) error {
	return ctx.DB().Create(data).Error
}

func (r *xRankPlacementRepository) StatsByWeaponIDs(
	ctx xcontext.Context, weaponIDs []int,
) ([]WeaponStat, error) {
	if len(weaponIDs) == 0 {
		return nil, nil
	}

	result := []WeaponStat{}
	err := ctx.DB().
		Model(&entity.XRankPlacement{}).
		Select("weapon_id, MIN(placement) as min_rank, MAX(power) as max_power").
		Where("weapon_id IN (?)", weaponIDs).
		Group("weapon_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
