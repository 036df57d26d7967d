package models

import (
	"time"

	"github.com/uptrace/bun"
)

type HonorLog struct {
	bun.BaseModel `bun:"table:honor_log,alias:hl"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull"`
	Delta     int64     `bun:"delta,notnull"`
	Reason    string    `bun:"reason,notnull"`
	Note      string    `bun:"note,notnull,default:''"`
	ByUser    *string   `bun:"by_user"`
	Timestamp time.Time `bun:"ts,notnull,default:current_timestamp"`
}
