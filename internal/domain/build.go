package domain

import (
	"database/sql"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/internal/model"
	"github.com/splatbuilds/backend/internal/repository"
	"github.com/splatbuilds/backend/pkg/enum"
	"github.com/splatbuilds/backend/pkg/errorx"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type BuildDomain interface {
	Create(ctx xcontext.Context, req *model.CreateBuildRequest) (*model.CreateBuildResponse, error)
	Update(ctx xcontext.Context, req *model.UpdateBuildRequest) (*model.UpdateBuildResponse, error)
	Delete(ctx xcontext.Context, req *model.DeleteBuildRequest) (*model.DeleteBuildResponse, error)
	GetList(ctx xcontext.Context, req *model.GetBuildsRequest) (*model.GetBuildsResponse, error)
	Count(ctx xcontext.Context, req *model.CountBuildsRequest) (*model.CountBuildsResponse, error)
	GetListByWeapon(ctx xcontext.Context, req *model.GetBuildsByWeaponRequest) (*model.GetBuildsByWeaponResponse, error)
}

type buildDomain struct {
	buildRepo     repository.BuildRepository
	placementRepo repository.XRankPlacementRepository
	idGenerator   *snowflake.Node
}

func NewBuildDomain(
	buildRepo repository.BuildRepository,
	placementRepo repository.XRankPlacementRepository,
	idGenerator *snowflake.Node,
) BuildDomain {
	return &buildDomain{
		buildRepo:     buildRepo,
		placementRepo: placementRepo,
		idGenerator:   idGenerator,
	}
}

func (d *buildDomain) Create(
	ctx xcontext.Context, req *model.CreateBuildRequest,
) (*model.CreateBuildResponse, error) {
	userID := xcontext.GetRequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	build, err := newBuild(userID, req)
	if err != nil {
		return nil, err
	}
	build.ID = d.idGenerator.Generate().Int64()

	ctx.BeginTx()
	defer ctx.RollbackTx()

	if err := d.insertBuild(ctx, build, req.WeaponIDs, entity.AbilityMatrix(req.Abilities)); err != nil {
		return nil, err
	}

	ctx.CommitTx()
	return &model.CreateBuildResponse{ID: build.ID}, nil
}

// Update replaces the whole build. Delete and recreate run in one
// transaction, so a failing recreate leaves the original build untouched.
func (d *buildDomain) Update(
	ctx xcontext.Context, req *model.UpdateBuildRequest,
) (*model.UpdateBuildResponse, error) {
	userID := xcontext.GetRequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	// Replacing an id that never existed degrades to a plain create.
	existing, err := d.buildRepo.GetByID(ctx, req.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.Logger().Errorf("Cannot get build: %v", err)
		return nil, errorx.Unknown
	}
	if existing != nil && existing.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	build, err := newBuild(userID, &req.CreateBuildRequest)
	if err != nil {
		return nil, err
	}
	build.ID = req.ID

	ctx.BeginTx()
	defer ctx.RollbackTx()

	if err := d.buildRepo.DeleteByID(ctx, req.ID); err != nil {
		ctx.Logger().Errorf("Cannot delete build: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.insertBuild(ctx, build, req.WeaponIDs, entity.AbilityMatrix(req.Abilities)); err != nil {
		return nil, err
	}

	ctx.CommitTx()
	return &model.UpdateBuildResponse{}, nil
}

func (d *buildDomain) Delete(
	ctx xcontext.Context, req *model.DeleteBuildRequest,
) (*model.DeleteBuildResponse, error) {
	userID := xcontext.GetRequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	existing, err := d.buildRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found build")
		}

		ctx.Logger().Errorf("Cannot get build: %v", err)
		return nil, errorx.Unknown
	}

	if existing.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.buildRepo.DeleteByID(ctx, req.ID); err != nil {
		ctx.Logger().Errorf("Cannot delete build: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBuildResponse{}, nil
}

func (d *buildDomain) GetList(
	ctx xcontext.Context, req *model.GetBuildsRequest,
) (*model.GetBuildsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	viewerID := xcontext.GetRequestUserID(ctx)
	builds, err := d.buildRepo.GetByUserID(ctx, req.UserID, viewerID == req.UserID)
	if err != nil {
		ctx.Logger().Errorf("Cannot get builds: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.augment(ctx, builds, false)
	if err != nil {
		return nil, err
	}

	return &model.GetBuildsResponse{Builds: converted}, nil
}

func (d *buildDomain) Count(
	ctx xcontext.Context, req *model.CountBuildsRequest,
) (*model.CountBuildsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	viewerID := xcontext.GetRequestUserID(ctx)
	count, err := d.buildRepo.CountByUserID(ctx, req.UserID, viewerID == req.UserID)
	if err != nil {
		ctx.Logger().Errorf("Cannot count builds: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CountBuildsResponse{Count: count}, nil
}

func (d *buildDomain) GetListByWeapon(
	ctx xcontext.Context, req *model.GetBuildsByWeaponRequest,
) (*model.GetBuildsByWeaponResponse, error) {
	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must not be negative")
	}

	limit := req.Limit
	if limit == 0 {
		limit = ctx.Configs().ApiServer.DefaultLimit
	}
	if limit > ctx.Configs().ApiServer.MaxLimit {
		limit = ctx.Configs().ApiServer.MaxLimit
	}

	builds, err := d.buildRepo.GetByWeaponID(
		ctx, req.WeaponID, entity.AltWeaponID(req.WeaponID), limit)
	if err != nil {
		ctx.Logger().Errorf("Cannot get builds by weapon: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.augment(ctx, builds, true)
	if err != nil {
		return nil, err
	}

	return &model.GetBuildsByWeaponResponse{Builds: converted}, nil
}

func newBuild(userID string, req *model.CreateBuildRequest) (*entity.Build, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if len(req.WeaponIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Build requires at least one weapon")
	}

	modes := make(entity.ModeSet, 0, len(req.Modes))
	for _, m := range req.Modes {
		mode, err := enum.ToEnum[entity.GameMode](m)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid game mode %s", m)
		}
		modes = append(modes, mode)
	}

	return &entity.Build{
		UserID:        userID,
		Title:         req.Title,
		Description:   sql.NullString{String: req.Description, Valid: req.Description != ""},
		Modes:         modes,
		HeadGearID:    nullInt64(req.HeadGearID),
		ClothesGearID: nullInt64(req.ClothesGearID),
		ShoesGearID:   nullInt64(req.ShoesGearID),
		Private:       req.Private,
	}, nil
}

// insertBuild runs the write sequence of a create or replace: the scalar
// build row, one weapon row per requested weapon in request order, then the
// 12 ability rows. It must be called inside a transaction.
func (d *buildDomain) insertBuild(
	ctx xcontext.Context,
	build *entity.Build,
	weaponIDs []int,
	matrix entity.AbilityMatrix,
) error {
	if !matrix.Complete() {
		return errorx.New(errorx.BadRequest,
			"Build requires all %d ability slots", entity.AbilityRowCount)
	}

	if err := d.buildRepo.Create(ctx, build); err != nil {
		ctx.Logger().Errorf("Cannot create build: %v", err)
		return errorx.Unknown
	}

	weapons := make([]entity.BuildWeapon, 0, len(weaponIDs))
	for _, weaponID := range weaponIDs {
		weapons = append(weapons, entity.BuildWeapon{BuildID: build.ID, WeaponID: weaponID})
	}
	if err := d.buildRepo.CreateWeapons(ctx, weapons); err != nil {
		ctx.Logger().Errorf("Cannot create build weapons: %v", err)
		return errorx.Unknown
	}

	if err := d.buildRepo.CreateAbilities(ctx, matrix.Rows(build.ID)); err != nil {
		ctx.Logger().Errorf("Cannot create build abilities: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *buildDomain) augment(
	ctx xcontext.Context, builds []entity.Build, withOwner bool,
) ([]model.Build, error) {
	weaponIDs := []int{}
	seen := map[int]bool{}
	for i := range builds {
		for _, weapon := range builds[i].Weapons {
			if !seen[weapon.WeaponID] {
				seen[weapon.WeaponID] = true
				weaponIDs = append(weaponIDs, weapon.WeaponID)
			}
		}
	}

	stats, err := d.placementRepo.StatsByWeaponIDs(ctx, weaponIDs)
	if err != nil {
		ctx.Logger().Errorf("Cannot get weapon stats: %v", err)
		return nil, errorx.Unknown
	}

	statByWeapon := map[int]repository.WeaponStat{}
	for _, stat := range stats {
		statByWeapon[stat.WeaponID] = stat
	}

	converted := make([]model.Build, 0, len(builds))
	for i := range builds {
		build, err := convertBuild(ctx, &builds[i], statByWeapon, withOwner)
		if err != nil {
			return nil, err
		}
		converted = append(converted, build)
	}

	return converted, nil
}

func convertBuild(
	ctx xcontext.Context,
	b *entity.Build,
	stats map[int]repository.WeaponStat,
	withOwner bool,
) (model.Build, error) {
	matrix, err := entity.AbilityMatrixOf(b.Abilities)
	if err != nil {
		ctx.Logger().Errorf("Corrupted ability rows of build %d: %v", b.ID, err)
		return model.Build{}, errorx.Unknown
	}

	weapons := make([]model.BuildWeapon, 0, len(b.Weapons))
	for _, w := range b.Weapons {
		weapon := model.BuildWeapon{WeaponID: w.WeaponID}
		if stat, ok := stats[w.WeaponID]; ok {
			if stat.MinRank.Valid {
				rank := int(stat.MinRank.Int64)
				weapon.MinRank = &rank
			}
			if stat.MaxPower.Valid {
				power := stat.MaxPower.Float64
				weapon.MaxPower = &power
			}
		}
		weapons = append(weapons, weapon)
	}

	// Callers rely on weapons always being sorted by id, whatever order
	// they were inserted in.
	slices.SortFunc(weapons, func(a, b model.BuildWeapon) bool {
		return a.WeaponID < b.WeaponID
	})

	modes := make([]string, 0, len(b.Modes))
	for _, mode := range b.Modes {
		modes = append(modes, string(mode))
	}

	result := model.Build{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description.String,
		Modes:         modes,
		HeadGearID:    int64Ptr(b.HeadGearID),
		ClothesGearID: int64Ptr(b.ClothesGearID),
		ShoesGearID:   int64Ptr(b.ShoesGearID),
		Abilities:     [3][4]string(matrix),
		Weapons:       weapons,
		Private:       b.Private,
		UpdatedAt:     b.UpdatedAt,
	}

	if withOwner {
		result.OwnerName = b.User.Name
		result.OwnerDiscriminator = b.User.Discriminator
		if b.User.PlusTier.Valid {
			tier := int(b.User.PlusTier.Int64)
			result.OwnerPlusTier = &tier
		}
	}

	return result, nil
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}
