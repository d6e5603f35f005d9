package models

import "time"

type SessionTime struct {
	Start   string `json:"start" bson:"start"`
	End     string `json:"end" bson:"end"`
	Enabled bool   `json:"enabled" bson:"enabled"`
}

type Theme struct {
	PrimaryColor   string `json:"primary_color" bson:"primary_color"`
	SecondaryColor string `json:"secondary_color" bson:"secondary_color"`
	AccentColor    string `json:"accent_color" bson:"accent_color"`
	SuccessColor   string `json:"success_color" bson:"success_color"`
}

type SiteSettings struct {
	Type          string                 `json:"-" bson:"type"`
	HeroImage     string                 `json:"hero_image" bson:"hero_image"`
	AboutImage    string                 `json:"about_image" bson:"about_image"`
	GalleryImages []string               `json:"gallery_images" bson:"gallery_images"`
	SiteTitle     string                 `json:"site_title" bson:"site_title"`
	SiteTagline   string                 `json:"site_tagline" bson:"site_tagline"`
	SessionTimes  map[string]SessionTime `json:"session_times" bson:"session_times"`
	ThemeColors   Theme                  `json:"theme" bson:"theme"`
	UpdatedAt     time.Time              `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	UpdatedBy     string                 `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}
