package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type orgRepository interface {
	Regions(ctx context.Context) ([]models.Region, error)
	Universities(ctx context.Context, regionID int64) ([]models.University, error)
	SmallGroups(ctx context.Context, universityID int64) ([]models.SmallGroup, error)
	AlumniSmallGroups(ctx context.Context, regionID int64) ([]models.AlumniSmallGroup, error)
}

// ScopeCascade maintains the dependent selection chain over the hierarchy:
// changing a selection clears every stricter descendant and reloads the
// child option lists for the new parent. Alumni groups hang off regions,
// siblings of universities.
type ScopeCascade struct {
	repo   orgRepository
	logger *zap.Logger

	selection    models.ScopeSelection
	regions      []models.Region
	universities []models.University
	smallGroups  []models.SmallGroup
	alumniGroups []models.AlumniSmallGroup
}

// NewScopeCascade constructs the cascade controller.
func NewScopeCascade(repo orgRepository, logger *zap.Logger) *ScopeCascade {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScopeCascade{repo: repo, logger: logger}
}

// Load fetches the region list. Child lists stay empty until a parent is
// selected.
func (c *ScopeCascade) Load(ctx context.Context) error {
	regions, err := c.repo.Regions(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load regions")
	}
	c.regions = regions
	return nil
}

// SelectRegion sets the region and clears university, small-group and
// alumni-group selections, then reloads the universities and alumni groups
// of the new region. A failed child fetch empties that list and leaves the
// region selection intact.
func (c *ScopeCascade) SelectRegion(ctx context.Context, regionID int64) {
	c.selection = models.ScopeSelection{RegionID: regionID}
	c.universities = nil
	c.smallGroups = nil
	c.alumniGroups = nil
	if regionID == 0 {
		return
	}
	universities, err := c.repo.Universities(ctx, regionID)
	if err != nil {
		c.logger.Warn("failed to load universities", zap.Int64("region_id", regionID), zap.Error(err))
	} else {
		c.universities = universities
	}
	alumniGroups, err := c.repo.AlumniSmallGroups(ctx, regionID)
	if err != nil {
		c.logger.Warn("failed to load alumni small groups", zap.Int64("region_id", regionID), zap.Error(err))
	} else {
		c.alumniGroups = alumniGroups
	}
}

// SelectUniversity sets the university and clears the small-group
// selection, then reloads the small groups of the new university. The
// region must already be selected.
func (c *ScopeCascade) SelectUniversity(ctx context.Context, universityID int64) error {
	if universityID != 0 && c.selection.RegionID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "select a region before a university")
	}
	c.selection.UniversityID = universityID
	c.selection.SmallGroupID = 0
	c.smallGroups = nil
	if universityID == 0 {
		return nil
	}
	smallGroups, err := c.repo.SmallGroups(ctx, universityID)
	if err != nil {
		c.logger.Warn("failed to load small groups", zap.Int64("university_id", universityID), zap.Error(err))
		return nil
	}
	c.smallGroups = smallGroups
	return nil
}

// SelectSmallGroup sets the leaf small-group selection; the university
// must already be selected.
func (c *ScopeCascade) SelectSmallGroup(smallGroupID int64) error {
	if smallGroupID != 0 && c.selection.UniversityID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "select a university before a small group")
	}
	c.selection.SmallGroupID = smallGroupID
	return nil
}

// SelectAlumniGroup sets the leaf alumni-group selection; the region must
// already be selected.
func (c *ScopeCascade) SelectAlumniGroup(alumniGroupID int64) error {
	if alumniGroupID != 0 && c.selection.RegionID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "select a region before an alumni small group")
	}
	c.selection.AlumniGroupID = alumniGroupID
	return nil
}

// Clear resets the whole selection and every child list. Clearing twice is
// the same as clearing once.
func (c *ScopeCascade) Clear() {
	c.selection = models.ScopeSelection{}
	c.universities = nil
	c.smallGroups = nil
	c.alumniGroups = nil
}

// Selection returns the current selection chain.
func (c *ScopeCascade) Selection() models.ScopeSelection {
	return c.selection
}

// Regions returns the loaded region options.
func (c *ScopeCascade) Regions() []models.Region { return c.regions }

// Universities returns the options for the selected region.
func (c *ScopeCascade) Universities() []models.University { return c.universities }

// SmallGroups returns the options for the selected university.
func (c *ScopeCascade) SmallGroups() []models.SmallGroup { return c.smallGroups }

// AlumniGroups returns the options for the selected region.
func (c *ScopeCascade) AlumniGroups() []models.AlumniSmallGroup { return c.alumniGroups }

// OrgService serves the hierarchy option lists consumed by scope pickers.
type OrgService struct {
	repo   orgRepository
	logger *zap.Logger
}

// NewOrgService constructs an OrgService.
func NewOrgService(repo orgRepository, logger *zap.Logger) *OrgService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgService{repo: repo, logger: logger}
}

// Regions lists every region.
func (s *OrgService) Regions(ctx context.Context) ([]models.Region, error) {
	regions, err := s.repo.Regions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load regions")
	}
	return regions, nil
}

// Universities lists the universities of one region.
func (s *OrgService) Universities(ctx context.Context, regionID int64) ([]models.University, error) {
	if regionID == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "regionId is required")
	}
	universities, err := s.repo.Universities(ctx, regionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load universities")
	}
	return universities, nil
}

// SmallGroups lists the small groups of one university.
func (s *OrgService) SmallGroups(ctx context.Context, universityID int64) ([]models.SmallGroup, error) {
	if universityID == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "universityId is required")
	}
	groups, err := s.repo.SmallGroups(ctx, universityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load small groups")
	}
	return groups, nil
}

// AlumniSmallGroups lists the alumni small groups of one region.
func (s *OrgService) AlumniSmallGroups(ctx context.Context, regionID int64) ([]models.AlumniSmallGroup, error) {
	if regionID == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "regionId is required")
	}
	groups, err := s.repo.AlumniSmallGroups(ctx, regionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumni small groups")
	}
	return groups, nil
}

// ValidateScope checks the parent-before-child invariants on a selection
// assembled outside the cascade (query parameters and the like).
func ValidateScope(sel models.ScopeSelection) error {
	if sel.UniversityID != 0 && sel.RegionID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "universityId requires regionId")
	}
	if sel.SmallGroupID != 0 && sel.UniversityID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "smallGroupId requires universityId")
	}
	if sel.AlumniGroupID != 0 && sel.RegionID == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "alumniGroupId requires regionId")
	}
	return nil
}
