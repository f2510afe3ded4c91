package domain

import "time"

// AliasRecord maps a guild member to their username on the linked Roblox platform.
type AliasRecord struct {
	UserID         int64
	RobloxUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
