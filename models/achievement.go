package models

import "time"

// AchievementType: static config (seeded into DB at boot)
type AchievementType struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g., "FIRST_PURCHASE", "FULL_CYCLE"
	Name        string `gorm:"not null"`
	Description string
	IconURL     string           `gorm:"type:text"`
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json"`                   // e.g., {"total_purchases": 1}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

// UserAchievement: awarded instance (many-to-many)
type UserAchievement struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID    string    `gorm:"index;not null" json:"external_user_id"`
	AchievementTypeID string    `gorm:"index;not null" json:"achievement_type_id"`
	AwardedAt         time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// AchievementTriggers lists the built-in achievements and the wallet-counter
// thresholds that award them.
var AchievementTriggers = []AchievementType{
	{
		Code:        "FIRST_PURCHASE",
		Name:        "Window Shopper No More",
		Description: "Bought your first cosmetic from the shop",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_purchases": 1},
	},
	{
		Code:        "COLLECTOR_5",
		Name:        "Collector",
		Description: "Own 5 cosmetics",
		Rarity:      "rare",
		Threshold:   map[string]int64{"owned_assets": 5},
	},
	{
		Code:        "WEEK_STREAK",
		Name:        "Creature of Habit",
		Description: "Claimed 7 daily rewards",
		Rarity:      "rare",
		Threshold:   map[string]int64{"total_claims": 7},
	},
	{
		Code:        "FULL_CYCLE",
		Name:        "Full Circle",
		Description: "Completed a full reward ladder",
		Rarity:      "epic",
		Threshold:   map[string]int64{"total_cycles": 1},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Getting Healthy",
		Description: "Reached level 5",
		Rarity:      "common",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Code:        "LEVEL_10",
		Name:        "Wellness Warrior",
		Description: "Reached level 10",
		Rarity:      "epic",
		Threshold:   map[string]int64{"level": 10},
	},
}
