package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/middleware"
	"github.com/ministry-hub/attendance-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// queryInt64 parses an integer query parameter, 0 when absent or invalid.
func queryInt64(c *gin.Context, name string) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryDate(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func queryEventType(c *gin.Context) *models.EventType {
	raw := c.Query("eventType")
	if raw == "" {
		return nil
	}
	t := models.EventType(raw)
	return &t
}

// scopeFromRequest resolves the effective scope selection. Elevated roles
// take it from query parameters; every other role takes it from the scope
// ids carried in their own claims, so client-sent scope parameters never
// widen a scoped user's view.
func scopeFromRequest(c *gin.Context, claims *models.JWTClaims) models.ScopeSelection {
	if claims == nil || claims.Role.Elevated() {
		return models.ScopeSelection{
			RegionID:      queryInt64(c, "regionId"),
			UniversityID:  queryInt64(c, "universityId"),
			SmallGroupID:  queryInt64(c, "smallGroupId"),
			AlumniGroupID: queryInt64(c, "alumniGroupId"),
		}
	}
	sel := models.ScopeSelection{}
	if claims.RegionID != nil {
		sel.RegionID = *claims.RegionID
	}
	if claims.UniversityID != nil {
		sel.UniversityID = *claims.UniversityID
	}
	if claims.GroupID != nil {
		if claims.Role == models.RoleAlumniSmallGroup {
			sel.AlumniGroupID = *claims.GroupID
		} else {
			sel.SmallGroupID = *claims.GroupID
		}
	}
	return sel
}
