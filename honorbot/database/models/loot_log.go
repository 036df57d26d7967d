package models

import (
	"time"

	"github.com/uptrace/bun"
)

type LootLog struct {
	bun.BaseModel `bun:"table:loot_log,alias:ll"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull"`
	Timestamp time.Time `bun:"ts,notnull,default:current_timestamp"`
	Reward    int64     `bun:"reward,notnull"`
}
