package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BadWord struct {
	bun.BaseModel `bun:"table:bad_words,alias:bw"`

	Word    string    `bun:"word,pk"`
	AddedBy string    `bun:"added_by,notnull"`
	AddedAt time.Time `bun:"added_at,notnull"`
}
