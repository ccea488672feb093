package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a recruiter or admin acting on the API.
type User struct {
	ID             uuid.UUID  `db:"id"              json:"id"`
	OrganizationID *uuid.UUID `db:"organization_id" json:"organizationId"`
	FullName       string     `db:"full_name"       json:"fullName"`
	Email          string     `db:"email"           json:"email"`
	Role           string     `db:"role"            json:"role"`
	CreatedAt      time.Time  `db:"created_at"      json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updatedAt"`
}
