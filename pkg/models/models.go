package models

import "encoding/json"

// Role gates which operations a principal may invoke.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleContractor Role = "contractor"
	RoleHomeowner  Role = "homeowner"
)

// ValidSignupRole reports whether a role may be chosen at signup.
// Admin is granted by configuration only, never self-selected.
func ValidSignupRole(r Role) bool {
	return r == RoleContractor || r == RoleHomeowner
}

// Principal is an authenticated identity as issued by the auth layer.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Caller is a principal with its resolved role, passed into the services
// that gate mutations on role or ownership.
type Caller struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Account struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         Role   `json:"role" db:"role"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

// SocialLinks is stored as a JSON blob on the profile row.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ContractorProfile struct {
	ID                  string      `json:"id" db:"contractor_id"`
	Name                string      `json:"name" db:"name"`
	Email               string      `json:"email" db:"email"`
	City                string      `json:"city" db:"city"`
	Province            string      `json:"province" db:"province"`
	ServiceCategories   []string    `json:"service_categories" db:"service_categories"`
	Bio                 string      `json:"bio,omitempty" db:"bio"`
	ProfilePictureURL   string      `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
	LicenseNumber       string      `json:"license_number,omitempty" db:"license_number"`
	IsLicenseApproved   bool        `json:"is_license_approved" db:"is_license_approved"`
	Phone               string      `json:"phone,omitempty" db:"phone"`
	Website             string      `json:"website,omitempty" db:"website"`
	SocialLinks         SocialLinks `json:"social_links" db:"social_links"`
	LanguagePreferences []string    `json:"language_preferences" db:"language_preferences"`
	Availability        string      `json:"availability,omitempty" db:"availability"`
	Updated             int64       `json:"updated" db:"updated"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched by the merge; non-nil fields replace the stored value.
type ProfileUpdate struct {
	Name                *string      `json:"name,omitempty"`
	Email               *string      `json:"email,omitempty"`
	City                *string      `json:"city,omitempty"`
	Province            *string      `json:"province,omitempty"`
	ServiceCategories   *[]string    `json:"service_categories,omitempty"`
	Bio                 *string      `json:"bio,omitempty"`
	ProfilePictureURL   *string      `json:"profile_picture_url,omitempty"`
	LicenseNumber       *string      `json:"license_number,omitempty"`
	Phone               *string      `json:"phone,omitempty"`
	Website             *string      `json:"website,omitempty"`
	SocialLinks         *SocialLinks `json:"social_links,omitempty"`
	LanguagePreferences *[]string    `json:"language_preferences,omitempty"`
	Availability        *string      `json:"availability,omitempty"`
}

// ProfileFilter narrows a directory listing. Empty fields match everything.
type ProfileFilter struct {
	Category string
	Province string
	City     string
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether the status admits no further transition short
// of a fresh resubmission.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type LicenseApplication struct {
	ID                 string            `json:"id" db:"id"`
	ContractorID       string            `json:"contractor_id" db:"contractor_id"`
	ContractorName     string            `json:"contractor_name" db:"contractor_name"`
	LicenseNumber      string            `json:"license_number" db:"license_number"`
	LicenseDocumentURL string            `json:"license_document_url,omitempty" db:"license_document_url"`
	Status             ApplicationStatus `json:"status" db:"status"`
	SubmittedAt        int64             `json:"submitted_at" db:"submitted_at"`
	ReviewedAt         *int64            `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewerID         string            `json:"reviewer_id,omitempty" db:"reviewer_id"`
	ReviewerNotes      string            `json:"reviewer_notes,omitempty" db:"reviewer_notes"`
}

type Review struct {
	ID                string `json:"id" db:"id"`
	ContractorID      string `json:"contractor_id" db:"contractor_id"`
	ReviewerID        string `json:"reviewer_id" db:"reviewer_id"`
	ReviewerName      string `json:"reviewer_name" db:"reviewer_name"`
	Rating            int    `json:"rating" db:"rating"`
	Title             string `json:"title,omitempty" db:"title"`
	Comment           string `json:"comment" db:"comment"`
	Created           int64  `json:"created" db:"created"`
	ContractorComment string `json:"contractor_comment,omitempty" db:"contractor_comment"`
}

// RatingAggregate is derived from the review set on read; it is never the
// source of truth.
type RatingAggregate struct {
	ContractorID  string  `json:"contractor_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type FavoriteEdge struct {
	HomeownerID  string `json:"homeowner_id" db:"homeowner_id"`
	ContractorID string `json:"contractor_id" db:"contractor_id"`
	Created      int64  `json:"created" db:"created"`
}

// MarshalStrings encodes a string slice for a TEXT column. A nil slice is
// stored as an empty JSON array so scans never see NULL.
func MarshalStrings(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

func UnmarshalStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
