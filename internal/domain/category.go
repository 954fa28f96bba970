package domain

import "time"

type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}
