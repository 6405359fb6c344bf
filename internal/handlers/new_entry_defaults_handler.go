package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"io.winapps.communitydiary/internal/diary"
	defaultsmodels "io.winapps.communitydiary/internal/models/new_entry_defaults"
)

// NewEntryDefaults returns the values a new-entry form should pre-fill:
// the user's default diary language and a map location. Advisory only.
func (h *EntryHandler) NewEntryDefaults(c *gin.Context) {
	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetByUID(ctx, uid)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to load user")
		return
	}

	lang, err := h.entries.DefaultLanguage(ctx, uid)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to resolve default language")
		return
	}

	var hintLat, hintLon *float64
	var hintZoom *int
	if v, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		hintLat = &v
	}
	if v, err := strconv.ParseFloat(c.Query("lon"), 64); err == nil {
		hintLon = &v
	}
	if v, err := strconv.Atoi(c.Query("zoom")); err == nil {
		hintZoom = &v
	}

	loc := diary.ResolveMapLocation(nil, user, hintLat, hintLon, hintZoom)

	c.JSON(http.StatusOK, defaultsmodels.NewEntryDefaultsResponse{
		LanguageCode: lang,
		MapLatitude:  loc.Lat,
		MapLongitude: loc.Lon,
		MapZoom:      loc.Zoom,
	})
}
