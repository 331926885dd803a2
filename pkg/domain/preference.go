package domain

import "time"

// Preference is the single global preference record. It is created once and
// only ever updated in place; there is no multi-tenant variant in v1.
type Preference struct {
	ID        int64
	Source    string
	Category  string
	Author    string
	UpdatedAt time.Time
}
