package repository

import (
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BuildRepository interface {
	Create(ctx xcontext.Context, data *entity.Build) error
	CreateWeapons(ctx xcontext.Context, weapons []entity.BuildWeapon) error
	CreateAbilities(ctx xcontext.Context, abilities []entity.BuildAbility) error
	GetByID(ctx xcontext.Context, id int64) (*entity.Build, error)
	DeleteByID(ctx xcontext.Context, id int64) error
	CountByUserID(ctx xcontext.Context, userID string, includePrivate bool) (int64, error)
	GetByUserID(ctx xcontext.Context, userID string, includePrivate bool) ([]entity.Build, error)
	GetByWeaponID(ctx xcontext.Context, weaponID, altWeaponID, limit int) ([]entity.Build, error)
}

type buildRepository struct{}

func NewBuildRepository() BuildRepository {
	return &buildRepository{}
}

// Create inserts only the scalar build row. Weapon and ability rows are
// inserted separately so the write transaction controls every statement.
func (r *buildRepository) Create(ctx xcontext.Context, data *entity.Build) error {
	return ctx.DB().Omit(clause.Associations).Create(data).Error
}

func (r *buildRepository) CreateWeapons(ctx xcontext.Context, weapons []entity.BuildWeapon) error {
	return ctx.DB().Create(&weapons).Error
}

func (r *buildRepository) CreateAbilities(ctx xcontext.Context, abilities []entity.BuildAbility) error {
	return ctx.DB().Create(&abilities).Error
}

func (r *buildRepository) GetByID(ctx xcontext.Context, id int64) (*entity.Build, error) {
	result := &entity.Build{}
	if err := ctx.DB().Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteByID removes the build row only; weapon and ability rows go with it
// through the ON DELETE CASCADE constraints. Deleting an unknown id is a
// no-op, not an error.
func (r *buildRepository) DeleteByID(ctx xcontext.Context, id int64) error {
	return ctx.DB().Delete(&entity.Build{}, "id=?", id).Error
}

func (r *buildRepository) CountByUserID(
	ctx xcontext.Context, userID string, includePrivate bool,
) (int64, error) {
	tx := ctx.DB().Model(&entity.Build{}).Where("user_id=?", userID)
	if !includePrivate {
		tx = tx.Where("private=?", false)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *buildRepository) GetByUserID(
	ctx xcontext.Context, userID string, includePrivate bool,
) ([]entity.Build, error) {
	tx := ctx.DB().Where("user_id=?", userID)
	if !includePrivate {
		tx = tx.Where("private=?", false)
	}

	result := []entity.Build{}
	err := tx.
		Preload("Weapons").
		Preload("Abilities").
		Order("updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByWeaponID returns public builds made for the weapon or its alternate
// id. Callers with no alternate pass entity.NoWeaponID, which matches
// nothing, so the query always has the same shape.
func (r *buildRepository) GetByWeaponID(
	ctx xcontext.Context, weaponID, altWeaponID, limit int,
) ([]entity.Build, error) {
	result := []entity.Build{}
	err := ctx.DB().
		Joins("join build_weapons on build_weapons.build_id = builds.id").
		Where("build_weapons.weapon_id IN (?)", []int{weaponID, altWeaponID}).
		Where("builds.private = ?", false).
		Group("builds.id").
		Order("builds.updated_at DESC").
		Limit(limit).
		Preload("User").
		Preload("Weapons").
		Preload("Abilities").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
