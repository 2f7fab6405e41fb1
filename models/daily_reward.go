package models

import "time"

// DailyReward is one rung of the day-indexed reward ladder. The ladder is
// read-only reference data; only per-user claim state is mutable.
type DailyReward struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	Day           int     `gorm:"uniqueIndex;not null" json:"day"` // 1..N
	Coins         int64   `gorm:"not null;default:0" json:"coins"`
	AvatarAssetID *string `gorm:"type:uuid" json:"avatar_asset_id,omitempty"` // optional cosmetic grant

	Timestamps
}

// UserClaimState tracks a user's position on the reward ladder. Updated only
// by the claim coordinator on a successful claim.
type UserClaimState struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	// Day last claimed in the current cycle, 0 = never claimed.
	LastClaimedDay   int        `gorm:"not null;default:0" json:"last_claimed_day"`
	NextEligibleTime *time.Time `json:"next_eligible_time,omitempty"`
	TotalCycles      int64      `gorm:"not null;default:0" json:"total_cycles"` // completed full ladders

	Timestamps
}
