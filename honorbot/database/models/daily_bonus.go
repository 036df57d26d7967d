package models

import (
	"time"

	"github.com/uptrace/bun"
)

type DailyBonus struct {
	bun.BaseModel `bun:"table:daily_bonus,alias:db"`

	UserID string `bun:"user_id,pk"`
	// LastClaimed is the local calendar date of the claim stored as midnight UTC.
	LastClaimed time.Time `bun:"last_claimed,notnull"`
}
