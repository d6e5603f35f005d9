package models

import "time"

type UserProfile struct {
	Phone                 string `json:"phone,omitempty" bson:"phone,omitempty"`
	Age                   int    `json:"age,omitempty" bson:"age,omitempty"`
	FitnessGoals          string `json:"fitness_goals,omitempty" bson:"fitness_goals,omitempty"`
	HealthConditions      string `json:"health_conditions,omitempty" bson:"health_conditions,omitempty"`
	PreviousInjuries      string `json:"previous_injuries,omitempty" bson:"previous_injuries,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty" bson:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" bson:"emergency_contact_phone,omitempty"`
}

type User struct {
	UserID           string       `json:"userid" bson:"userid"`
	Email            string       `json:"email" bson:"email"`
	Name             string       `json:"name" bson:"name"`
	Initials         string       `json:"initials" bson:"initials"`
	Password         string       `json:"-" bson:"password"`
	IsAdmin          bool         `json:"is_admin" bson:"is_admin"`
	Credits          int          `json:"credits" bson:"credits"`
	HasUnlimited     bool         `json:"has_unlimited" bson:"has_unlimited"`
	ProfileCompleted bool         `json:"profile_completed" bson:"profile_completed"`
	Profile          *UserProfile `json:"profile,omitempty" bson:"profile,omitempty"`
	CreatedAt        time.Time    `json:"created_at" bson:"created_at"`
	LastLogin        time.Time    `json:"last_login,omitempty" bson:"last_login,omitempty"`
	RefreshToken     string       `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry    time.Time    `json:"-" bson:"refreshexp,omitempty"`
}

// PublicUser is the shape returned to clients and admin listings.
type PublicUser struct {
	UserID           string       `json:"userid" bson:"userid"`
	Email            string       `json:"email" bson:"email"`
	Name             string       `json:"name" bson:"name"`
	Initials         string       `json:"initials" bson:"initials"`
	IsAdmin          bool         `json:"is_admin" bson:"is_admin"`
	Credits          int          `json:"credits" bson:"credits"`
	HasUnlimited     bool         `json:"has_unlimited" bson:"has_unlimited"`
	ProfileCompleted bool         `json:"profile_completed" bson:"profile_completed"`
	Profile          *UserProfile `json:"profile,omitempty" bson:"profile,omitempty"`
	CreatedAt        time.Time    `json:"created_at" bson:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		UserID:           u.UserID,
		Email:            u.Email,
		Name:             u.Name,
		Initials:         u.Initials,
		IsAdmin:          u.IsAdmin,
		Credits:          u.Credits,
		HasUnlimited:     u.HasUnlimited,
		ProfileCompleted: u.ProfileCompleted,
		Profile:          u.Profile,
		CreatedAt:        u.CreatedAt,
	}
}
