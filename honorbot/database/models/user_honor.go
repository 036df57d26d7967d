package models

import "github.com/uptrace/bun"

// UserHonor is the derived balance. It always equals the clamped fold of the
// user's honor_log rows.
type UserHonor struct {
	bun.BaseModel `bun:"table:user_honor,alias:uh"`

	UserID string `bun:"user_id,pk"`
	Honor  int64  `bun:"honor,notnull"`
}
