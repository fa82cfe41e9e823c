package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profile is the one-to-one extension of a User: where they work, what they
// know, where they studied. Destroyed together with the account.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID         `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	User          *User             `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Company       string            `bun:"company" json:"company,omitempty"`
	Website       string            `bun:"website" json:"website,omitempty"`
	Location      string            `bun:"location" json:"location,omitempty"`
	Status        string            `bun:"status,notnull" json:"status,omitempty"`
	Skills        []string          `bun:"skills,type:jsonb" json:"skills,omitempty"`
	Bio           string            `bun:"bio" json:"bio,omitempty"`
	GithubUser    string            `bun:"github_user" json:"github_user,omitempty"`
	Social        map[string]string `bun:"social,type:jsonb" json:"social,omitempty"`
	Experience    []*Experience     `bun:"rel:has-many,join:id=profile_id" json:"experience,omitempty"`
	Education     []*Education      `bun:"rel:has-many,join:id=profile_id" json:"education,omitempty"`
	CreatedAt     *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Experience is a single work history entry on a profile
type Experience struct {
	bun.BaseModel `bun:"table:profile_experience,alias:exp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProfileID     uuid.UUID  `bun:"profile_id,notnull,type:uuid" json:"-"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Company       string     `bun:"company,notnull" json:"company,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	From          *time.Time `bun:"date_from,nullzero" json:"from,omitempty"`
	To            *time.Time `bun:"date_to,nullzero" json:"to,omitempty"`
	Current       bool       `bun:"current" json:"current,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
}

// Education is a single schooling entry on a profile
type Education struct {
	bun.BaseModel `bun:"table:profile_education,alias:edu"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProfileID     uuid.UUID  `bun:"profile_id,notnull,type:uuid" json:"-"`
	School        string     `bun:"school,notnull" json:"school,omitempty"`
	Degree        string     `bun:"degree,notnull" json:"degree,omitempty"`
	FieldOfStudy  string     `bun:"field_of_study" json:"field_of_study,omitempty"`
	From          *time.Time `bun:"date_from,nullzero" json:"from,omitempty"`
	To            *time.Time `bun:"date_to,nullzero" json:"to,omitempty"`
	Current       bool       `bun:"current" json:"current,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
}
