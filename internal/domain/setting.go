package domain

import "time"

// Setting is one venue configuration row (name, theme and similar).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
