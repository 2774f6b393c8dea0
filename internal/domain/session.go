package domain

import "time"

// Session is a server-tracked staff credential with idle expiry.
// LastAccessAt only moves forward; the session store refreshes it on every
// successful validation.
type Session struct {
	ID           string
	Role         StaffRole
	CreatedAt    time.Time
	LastAccessAt time.Time
}
