package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/splatbuilds/backend/internal/entity"
	"github.com/splatbuilds/backend/internal/model"
	"github.com/splatbuilds/backend/internal/repository"
	"github.com/splatbuilds/backend/pkg/errorx"
	"github.com/splatbuilds/backend/pkg/testutil"
	"github.com/splatbuilds/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var testAbilities = [3][4]string{
	{"ISM", "ISS", "REC", "RSU"},
	{"SSU", "QR", "QSJ", "BRU"},
	{"SCU", "SPU", "BDU", "MPU"},
}

func newTestBuildDomain(t *testing.T) BuildDomain {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewBuildDomain(
		repository.NewBuildRepository(),
		repository.NewXRankPlacementRepository(),
		node,
	)
}

func testCreateBuildRequest() *model.CreateBuildRequest {
	headGearID := int64(5000)
	return &model.CreateBuildRequest{
		Title:       "Ninja Squid Zapper",
		Description: "For short range duels",
		Modes:       []string{"RM", "SZ"},
		HeadGearID:  &headGearID,
		Abilities:   testAbilities,
		WeaponIDs:   []int{1200, 45},
	}
}

func Test_buildDomain_CreateAndGetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)
	require.NotZero(t, createResp.ID)

	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)

	build := listResp.Builds[0]
	require.Equal(t, createResp.ID, build.ID)
	require.Equal(t, "Ninja Squid Zapper", build.Title)
	require.Equal(t, "For short range duels", build.Description)
	require.Equal(t, []string{"SZ", "RM"}, build.Modes)
	require.NotNil(t, build.HeadGearID)
	require.Equal(t, int64(5000), *build.HeadGearID)
	require.Nil(t, build.ClothesGearID)
	require.Equal(t, testAbilities, build.Abilities)
	require.False(t, build.Private)

	// Weapons come back sorted by id regardless of request order, with no
	// stats attached when the ladder has none.
	require.Len(t, build.Weapons, 2)
	require.Equal(t, 45, build.Weapons[0].WeaponID)
	require.Equal(t, 1200, build.Weapons[1].WeaponID)
	require.Nil(t, build.Weapons[0].MinRank)
	require.Nil(t, build.Weapons[0].MaxPower)
}

func Test_buildDomain_Create_invalidRequest(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	req := testCreateBuildRequest()
	req.Title = ""
	_, err := buildDomain.Create(ctx, req)
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty title"), err)

	req = testCreateBuildRequest()
	req.WeaponIDs = nil
	_, err = buildDomain.Create(ctx, req)
	require.Equal(t, errorx.New(errorx.BadRequest, "Build requires at least one weapon"), err)

	req = testCreateBuildRequest()
	req.Modes = []string{"SZ", "XX"}
	_, err = buildDomain.Create(ctx, req)
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid game mode XX"), err)

	req = testCreateBuildRequest()
	req.Abilities[2][3] = ""
	_, err = buildDomain.Create(ctx, req)
	require.Equal(t, errorx.New(errorx.BadRequest, "Build requires all 12 ability slots"), err)

	// Nothing was written.
	countResp, err := buildDomain.Count(ctx, &model.CountBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, int64(0), countResp.Count)
}

func Test_buildDomain_Create_unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()
	buildDomain := newTestBuildDomain(t)

	_, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.Equal(t, errorx.New(errorx.Unauthenticated, "User is not authenticated"), err)
}

func Test_buildDomain_Update_replacesEverything(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	newAbilities := testAbilities
	newAbilities[0][0] = "LDE"

	_, err = buildDomain.Update(ctx, &model.UpdateBuildRequest{
		ID: createResp.ID,
		CreateBuildRequest: model.CreateBuildRequest{
			Title:     "Zapper v2",
			Modes:     []string{"TC"},
			Abilities: newAbilities,
			WeaponIDs: []int{45},
			Private:   true,
		},
	})
	require.NoError(t, err)

	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)

	build := listResp.Builds[0]
	require.Equal(t, createResp.ID, build.ID)
	require.Equal(t, "Zapper v2", build.Title)
	require.Empty(t, build.Description)
	require.Equal(t, []string{"TC"}, build.Modes)
	require.Nil(t, build.HeadGearID)
	require.Equal(t, newAbilities, build.Abilities)
	require.Len(t, build.Weapons, 1)
	require.Equal(t, 45, build.Weapons[0].WeaponID)
	require.True(t, build.Private)
}

func Test_buildDomain_Update_failureKeepsOriginal(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	// The incomplete matrix is only rejected inside the transaction, after
	// the old rows were already deleted. The rollback must restore them.
	brokenAbilities := testAbilities
	brokenAbilities[1][2] = ""

	_, err = buildDomain.Update(ctx, &model.UpdateBuildRequest{
		ID: createResp.ID,
		CreateBuildRequest: model.CreateBuildRequest{
			Title:     "Broken",
			Abilities: brokenAbilities,
			WeaponIDs: []int{45},
		},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Build requires all 12 ability slots"), err)

	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)
	require.Equal(t, "Ninja Squid Zapper", listResp.Builds[0].Title)
	require.Equal(t, testAbilities, listResp.Builds[0].Abilities)
	require.Len(t, listResp.Builds[0].Weapons, 2)
}

func Test_buildDomain_Update_permissionDenied(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	xcontext.SetRequestUserID(ctx, "user2")
	_, err = buildDomain.Update(ctx, &model.UpdateBuildRequest{
		ID:                 createResp.ID,
		CreateBuildRequest: *testCreateBuildRequest(),
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	xcontext.SetRequestUserID(ctx, "user1")
	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)
}

func Test_buildDomain_Update_unknownIDCreates(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	_, err := buildDomain.Update(ctx, &model.UpdateBuildRequest{
		ID:                 12345,
		CreateBuildRequest: *testCreateBuildRequest(),
	})
	require.NoError(t, err)

	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)
	require.Equal(t, int64(12345), listResp.Builds[0].ID)
}

func Test_buildDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	xcontext.SetRequestUserID(ctx, "user2")
	_, err = buildDomain.Delete(ctx, &model.DeleteBuildRequest{ID: createResp.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	xcontext.SetRequestUserID(ctx, "user1")
	_, err = buildDomain.Delete(ctx, &model.DeleteBuildRequest{ID: createResp.ID})
	require.NoError(t, err)

	countResp, err := buildDomain.Count(ctx, &model.CountBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, int64(0), countResp.Count)

	_, err = buildDomain.Delete(ctx, &model.DeleteBuildRequest{ID: createResp.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found build"), err)
}

func Test_buildDomain_privateVisibility(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	_, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	privateReq := testCreateBuildRequest()
	privateReq.Title = "Secret weapon"
	privateReq.Private = true
	_, err = buildDomain.Create(ctx, privateReq)
	require.NoError(t, err)

	// The owner sees both.
	countResp, err := buildDomain.Count(ctx, &model.CountBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, int64(2), countResp.Count)

	// Anyone else sees only the public one.
	xcontext.SetRequestUserID(ctx, "user2")
	countResp, err = buildDomain.Count(ctx, &model.CountBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, int64(1), countResp.Count)

	listResp, err := buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)
	require.Equal(t, "Ninja Squid Zapper", listResp.Builds[0].Title)
}

func Test_buildDomain_GetListByWeapon_matchesAlternateID(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	req := testCreateBuildRequest()
	req.WeaponIDs = []int{1200, 40}
	_, err := buildDomain.Create(ctx, req)
	require.NoError(t, err)

	// 41 is the alternate kit of 40, so the build is found either way.
	for _, weaponID := range []int{40, 41} {
		listResp, err := buildDomain.GetListByWeapon(
			ctx, &model.GetBuildsByWeaponRequest{WeaponID: weaponID})
		require.NoError(t, err)
		require.Len(t, listResp.Builds, 1)
	}

	// The owner identity rides along on the weapon scoped listing.
	listResp, err := buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 40})
	require.NoError(t, err)
	require.Equal(t, "Agent 3", listResp.Builds[0].OwnerName)
	require.Equal(t, "#0001", listResp.Builds[0].OwnerDiscriminator)
	require.NotNil(t, listResp.Builds[0].OwnerPlusTier)
	require.Equal(t, 1, *listResp.Builds[0].OwnerPlusTier)

	// Weapons come back sorted by id on this listing too.
	require.Len(t, listResp.Builds[0].Weapons, 2)
	require.Equal(t, 40, listResp.Builds[0].Weapons[0].WeaponID)
	require.Equal(t, 1200, listResp.Builds[0].Weapons[1].WeaponID)

	// A weapon with no alternate kit matches only itself.
	listResp, err = buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 45})
	require.NoError(t, err)
	require.Empty(t, listResp.Builds)
}

func Test_buildDomain_GetListByWeapon_excludesPrivate(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	req := testCreateBuildRequest()
	req.Private = true
	_, err := buildDomain.Create(ctx, req)
	require.NoError(t, err)

	listResp, err := buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 45})
	require.NoError(t, err)
	require.Empty(t, listResp.Builds)
}

func Test_buildDomain_GetListByWeapon_limit(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	for i := 0; i < 3; i++ {
		_, err := buildDomain.Create(ctx, testCreateBuildRequest())
		require.NoError(t, err)
	}

	listResp, err := buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 45, Limit: 2})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 2)

	_, err = buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 45, Limit: -1})
	require.Equal(t, errorx.New(errorx.BadRequest, "Limit must not be negative"), err)
}

func Test_buildDomain_GetListByWeapon_weaponStats(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)
	placementRepo := repository.NewXRankPlacementRepository()

	req := testCreateBuildRequest()
	req.WeaponIDs = []int{40}
	_, err := buildDomain.Create(ctx, req)
	require.NoError(t, err)

	placements := []entity.XRankPlacement{
		{PlayerName: "woomy", WeaponID: 40, Mode: entity.ModeSplatZones,
			Placement: 12, Power: 2100.5, RecordedAt: time.Now()},
		{PlayerName: "ngyes", WeaponID: 40, Mode: entity.ModeTowerControl,
			Placement: 3, Power: 2250.0, RecordedAt: time.Now()},
	}
	for i := range placements {
		require.NoError(t, placementRepo.Create(ctx, &placements[i]))
	}

	listResp, err := buildDomain.GetListByWeapon(
		ctx, &model.GetBuildsByWeaponRequest{WeaponID: 40})
	require.NoError(t, err)
	require.Len(t, listResp.Builds, 1)
	require.Len(t, listResp.Builds[0].Weapons, 1)

	weapon := listResp.Builds[0].Weapons[0]
	require.NotNil(t, weapon.MinRank)
	require.Equal(t, 3, *weapon.MinRank)
	require.NotNil(t, weapon.MaxPower)
	require.Equal(t, 2250.0, *weapon.MaxPower)
}

func Test_buildDomain_GetList_corruptedAbilityRows(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	buildDomain := newTestBuildDomain(t)

	createResp, err := buildDomain.Create(ctx, testCreateBuildRequest())
	require.NoError(t, err)

	// Lose one stored ability row behind the domain's back. The read path
	// must treat the incomplete matrix as a data integrity fault, not
	// return a partial build.
	err = ctx.DB().
		Where("build_id=? AND gear_type=? AND slot=?", createResp.ID, entity.GearHead, 0).
		Delete(&entity.BuildAbility{}).Error
	require.NoError(t, err)

	_, err = buildDomain.GetList(ctx, &model.GetBuildsRequest{UserID: "user1"})
	require.Equal(t, errorx.Unknown, err)
}
