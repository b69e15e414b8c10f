package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

type fakeOrgRepo struct {
	regions      []models.Region
	universities map[int64][]models.University
	smallGroups  map[int64][]models.SmallGroup
	alumniGroups map[int64][]models.AlumniSmallGroup
	failChildren bool
}

func (f *fakeOrgRepo) Regions(context.Context) ([]models.Region, error) {
	return f.regions, nil
}

func (f *fakeOrgRepo) Universities(_ context.Context, regionID int64) ([]models.University, error) {
	if f.failChildren {
		return nil, errors.New("db down")
	}
	return f.universities[regionID], nil
}

func (f *fakeOrgRepo) SmallGroups(_ context.Context, universityID int64) ([]models.SmallGroup, error) {
	if f.failChildren {
		return nil, errors.New("db down")
	}
	return f.smallGroups[universityID], nil
}

func (f *fakeOrgRepo) AlumniSmallGroups(_ context.Context, regionID int64) ([]models.AlumniSmallGroup, error) {
	if f.failChildren {
		return nil, errors.New("db down")
	}
	return f.alumniGroups[regionID], nil
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		regions: []models.Region{{ID: 1, Name: "North"}, {ID: 2, Name: "South"}},
		universities: map[int64][]models.University{
			1: {{ID: 10, Name: "North Tech", RegionID: 1}},
			2: {{ID: 20, Name: "South State", RegionID: 2}},
		},
		smallGroups: map[int64][]models.SmallGroup{
			10: {{ID: 100, Name: "Alpha", UniversityID: 10, RegionID: 1}},
		},
		alumniGroups: map[int64][]models.AlumniSmallGroup{
			1: {{ID: 500, Name: "North Alumni", RegionID: 1}},
		},
	}
}

func TestCascadeSelectRegionLoadsChildren(t *testing.T) {
	cascade := NewScopeCascade(newFakeOrgRepo(), nil)
	ctx := context.Background()

	require.NoError(t, cascade.Load(ctx))
	assert.Len(t, cascade.Regions(), 2)

	cascade.SelectRegion(ctx, 1)
	assert.Equal(t, int64(1), cascade.Selection().RegionID)
	assert.Len(t, cascade.Universities(), 1)
	assert.Len(t, cascade.AlumniGroups(), 1)
}

func TestCascadeRegionChangeClearsDescendants(t *testing.T) {
	cascade := NewScopeCascade(newFakeOrgRepo(), nil)
	ctx := context.Background()

	cascade.SelectRegion(ctx, 1)
	require.NoError(t, cascade.SelectUniversity(ctx, 10))
	require.NoError(t, cascade.SelectSmallGroup(100))
	require.Equal(t, int64(100), cascade.Selection().SmallGroupID)

	cascade.SelectRegion(ctx, 2)

	sel := cascade.Selection()
	assert.Equal(t, int64(2), sel.RegionID)
	assert.Zero(t, sel.UniversityID)
	assert.Zero(t, sel.SmallGroupID)
	assert.Zero(t, sel.AlumniGroupID)
	assert.Empty(t, cascade.SmallGroups())
}

func TestCascadeUniversityChangeClearsSmallGroup(t *testing.T) {
	cascade := NewScopeCascade(newFakeOrgRepo(), nil)
	ctx := context.Background()

	cascade.SelectRegion(ctx, 1)
	require.NoError(t, cascade.SelectUniversity(ctx, 10))
	require.NoError(t, cascade.SelectSmallGroup(100))

	require.NoError(t, cascade.SelectUniversity(ctx, 10))
	assert.Zero(t, cascade.Selection().SmallGroupID)
}

func TestCascadeRejectsChildWithoutParent(t *testing.T) {
	cascade := NewScopeCascade(newFakeOrgRepo(), nil)
	ctx := context.Background()

	assert.Error(t, cascade.SelectUniversity(ctx, 10))
	assert.Error(t, cascade.SelectSmallGroup(100))
	assert.Error(t, cascade.SelectAlumniGroup(500))
}

func TestCascadeChildFetchFailureKeepsParent(t *testing.T) {
	repo := newFakeOrgRepo()
	repo.failChildren = true
	cascade := NewScopeCascade(repo, nil)
	ctx := context.Background()

	cascade.SelectRegion(ctx, 1)

	assert.Equal(t, int64(1), cascade.Selection().RegionID)
	assert.Empty(t, cascade.Universities())
	assert.Empty(t, cascade.AlumniGroups())
}

func TestCascadeClearIdempotent(t *testing.T) {
	cascade := NewScopeCascade(newFakeOrgRepo(), nil)
	ctx := context.Background()

	cascade.SelectRegion(ctx, 1)
	cascade.Clear()
	first := cascade.Selection()
	cascade.Clear()

	assert.Equal(t, first, cascade.Selection())
	assert.True(t, cascade.Selection().IsZero())
}

func TestValidateScope(t *testing.T) {
	assert.NoError(t, ValidateScope(models.ScopeSelection{}))
	assert.NoError(t, ValidateScope(models.ScopeSelection{RegionID: 1, UniversityID: 10, SmallGroupID: 100}))
	assert.NoError(t, ValidateScope(models.ScopeSelection{RegionID: 1, AlumniGroupID: 500}))

	assert.Error(t, ValidateScope(models.ScopeSelection{UniversityID: 10}))
	assert.Error(t, ValidateScope(models.ScopeSelection{RegionID: 1, SmallGroupID: 100}))
	assert.Error(t, ValidateScope(models.ScopeSelection{AlumniGroupID: 500}))
}
