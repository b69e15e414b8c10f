package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

// DrilldownController walks the engagement hierarchy national → region →
// university → member. The navigation stack is the single source of truth:
// the active level is always recomputed from the stack length, and every
// transition refetches its dataset so a view never shows data from a
// previous position.
type DrilldownController struct {
	analytics *AnalyticsService
	logger    *zap.Logger

	stack   []models.NavigationEntry
	filter  models.EngagementFilter
	dataset *models.EngagementDataset
}

// NewDrilldownController constructs a controller positioned at the
// national level.
func NewDrilldownController(analytics *AnalyticsService, logger *zap.Logger) *DrilldownController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DrilldownController{analytics: analytics, logger: logger}
}

// Level returns the active level, derived from the stack length.
func (c *DrilldownController) Level() models.DrilldownLevel {
	return models.LevelForDepth(len(c.stack))
}

// Stack returns the breadcrumb entries from national downwards.
func (c *DrilldownController) Stack() []models.NavigationEntry { return c.stack }

// Dataset returns the rows fetched for the current position, nil before
// the first Load.
func (c *DrilldownController) Dataset() *models.EngagementDataset { return c.dataset }

// Load fetches the dataset for the current position.
func (c *DrilldownController) Load(ctx context.Context) error {
	dataset, _, err := c.analytics.Dataset(ctx, c.Level(), c.parentID(), c.filter)
	if err != nil {
		return err
	}
	c.dataset = dataset
	return nil
}

// SetFilter replaces the event/date filter and refetches the current
// level, keeping the navigation position.
func (c *DrilldownController) SetFilter(ctx context.Context, filter models.EngagementFilter) error {
	c.filter = filter
	return c.Load(ctx)
}

// DrillInto descends one level through a row: national rows descend by
// region id, region rows by university id, and university rows by their
// small-group id straight into member statistics. Member rows are leaves.
func (c *DrilldownController) DrillInto(ctx context.Context, row models.EngagementRow) error {
	var entry models.NavigationEntry
	switch c.Level() {
	case models.LevelNational:
		if row.RegionID == nil {
			return appErrors.Clone(appErrors.ErrValidation, "row carries no region id")
		}
		entry = models.NavigationEntry{Level: models.LevelRegion, ID: *row.RegionID, Name: row.Name}
	case models.LevelRegion:
		if row.UniversityID == nil {
			return appErrors.Clone(appErrors.ErrValidation, "row carries no university id")
		}
		entry = models.NavigationEntry{Level: models.LevelUniversity, ID: *row.UniversityID, Name: row.Name}
	case models.LevelUniversity:
		if row.SmallGroupID == nil {
			return appErrors.Clone(appErrors.ErrValidation, "row carries no small group id")
		}
		entry = models.NavigationEntry{Level: models.LevelMember, ID: *row.SmallGroupID, Name: row.Name}
	default:
		return appErrors.Clone(appErrors.ErrValidation, "member rows cannot be expanded")
	}
	c.stack = append(c.stack, entry)
	if err := c.Load(ctx); err != nil {
		c.stack = c.stack[:len(c.stack)-1]
		return err
	}
	return nil
}

// NavigateTo truncates the stack so the i-th breadcrumb becomes the
// deepest entry, then refetches. Index -1 returns to national.
func (c *DrilldownController) NavigateTo(ctx context.Context, i int) error {
	if i >= len(c.stack) {
		return appErrors.Clone(appErrors.ErrValidation, "navigation index out of range")
	}
	if i < 0 {
		c.stack = nil
	} else {
		c.stack = c.stack[:i+1]
	}
	return c.Load(ctx)
}

// Back pops one breadcrumb and refetches; at national it is a no-op.
func (c *DrilldownController) Back(ctx context.Context) error {
	if len(c.stack) == 0 {
		return nil
	}
	c.stack = c.stack[:len(c.stack)-1]
	return c.Load(ctx)
}

// Reset returns to an empty national position without fetching.
func (c *DrilldownController) Reset() {
	c.stack = nil
	c.dataset = nil
}

// parentID is the id of the deepest breadcrumb, 0 at national.
func (c *DrilldownController) parentID() int64 {
	if len(c.stack) == 0 {
		return 0
	}
	return c.stack[len(c.stack)-1].ID
}
