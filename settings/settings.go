package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pulsefit/db"
	"pulsefit/models"
	"pulsefit/rdx"
	"pulsefit/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults returns the out-of-the-box site configuration used until an
// admin saves their own.
func Defaults() models.SiteSettings {
	return models.SiteSettings{
		Type:          "site",
		GalleryImages: []string{},
		SiteTitle:     "Pulsefit Personal Training",
		SiteTagline:   "Personal Training & Small Group Fitness",
		SessionTimes: map[string]models.SessionTime{
			"morning":    {Start: "5:30 AM", End: "6:15 AM", Enabled: true},
			"midmorning": {Start: "9:30 AM", End: "10:15 AM", Enabled: true},
		},
		ThemeColors: models.Theme{
			PrimaryColor:   "#F5D5D5",
			SecondaryColor: "#E8B4B4",
			AccentColor:    "#1A1A1A",
			SuccessColor:   "#8FB392",
		},
	}
}

const settingsCacheKey = "settings:site"

// Current loads the stored settings, falling back to defaults per missing
// field. Every booking validation reads the slot configuration, so the
// merged document is cached in Redis and invalidated on admin updates.
func Current(ctx context.Context) models.SiteSettings {
	if cached, err := rdx.RdxGet(settingsCacheKey); err == nil && cached != "" {
		var s models.SiteSettings
		if json.Unmarshal([]byte(cached), &s) == nil && s.SessionTimes != nil {
			return s
		}
	}

	stored := Defaults()
	err := db.SiteSettingsCollection.FindOne(ctx, bson.M{"type": "site"}).Decode(&stored)
	if err != nil && err != mongo.ErrNoDocuments {
		return Defaults()
	}
	if stored.SessionTimes == nil {
		stored.SessionTimes = Defaults().SessionTimes
	}

	if data, merr := json.Marshal(stored); merr == nil {
		_ = rdx.RdxSet(settingsCacheKey, string(data))
	}
	return stored
}

// SlotConfig resolves one slot's display window and enabled state.
func SlotConfig(ctx context.Context, slot string) (display string, enabled bool) {
	s := Current(ctx)
	cfg, ok := s.SessionTimes[slot]
	if !ok {
		return "", false
	}
	if cfg.Start == "" || cfg.End == "" {
		def := Defaults().SessionTimes[slot]
		return def.Start + " - " + def.End, cfg.Enabled
	}
	return cfg.Start + " - " + cfg.End, cfg.Enabled
}

// GetSiteSettings is public: the landing page reads it before login.
func GetSiteSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	utils.RespondWithJSON(w, http.StatusOK, Current(ctx))
}

// UpdateSiteSettings applies admin edits to the allowed fields only.
func UpdateSiteSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	adminID := utils.GetUserIDFromRequest(r)

	var input struct {
		HeroImage     *string                            `json:"hero_image"`
		AboutImage    *string                            `json:"about_image"`
		GalleryImages *[]string                          `json:"gallery_images"`
		SiteTitle     *string                            `json:"site_title"`
		SiteTagline   *string                            `json:"site_tagline"`
		SessionTimes  *map[string]models.SessionTime     `json:"session_times"`
		ThemeColors   *models.Theme                      `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	current := Current(ctx)
	if input.HeroImage != nil {
		current.HeroImage = *input.HeroImage
	}
	if input.AboutImage != nil {
		current.AboutImage = *input.AboutImage
	}
	if input.GalleryImages != nil {
		current.GalleryImages = *input.GalleryImages
	}
	if input.SiteTitle != nil {
		current.SiteTitle = *input.SiteTitle
	}
	if input.SiteTagline != nil {
		current.SiteTagline = *input.SiteTagline
	}
	if input.SessionTimes != nil {
		current.SessionTimes = *input.SessionTimes
	}
	if input.ThemeColors != nil {
		current.ThemeColors = *input.ThemeColors
	}
	current.Type = "site"
	current.UpdatedAt = time.Now().UTC()
	current.UpdatedBy = adminID

	_, err := db.SiteSettingsCollection.UpdateOne(ctx,
		bson.M{"type": "site"},
		bson.M{"$set": current},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	_ = rdx.RdxDel(settingsCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":  "Settings updated successfully",
		"settings": current,
	})
}
