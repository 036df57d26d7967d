package honor

import "time"

const (
	MinHonor int64 = -144000
	MaxHonor int64 = 144000

	LootboxCooldown = 24 * time.Hour
)

// Reasons recorded on ledger entries. Achievement predicates count entries by
// case-sensitive substring, so these must stay stable once written. Free text
// goes in the entry's note, never in its reason.
const (
	ReasonThanks        = "thanks"
	ReasonBless         = "bless"
	ReasonHelpConfirmed = "help confirmed"
	ReasonProfanity     = "profanity"
	ReasonDailyBonus    = "daily bonus"
	ReasonLootbox       = "lootbox"
	ReasonAdjustment    = "admin adjustment"
)

// Clock returns the current time. Tests swap it to simulate claim windows.
type Clock func() time.Time

type Account struct {
	UserID  string
	Balance int64
}

// Change is one requested ledger mutation.
type Change struct {
	UserID  string
	Delta   int64
	Reason  string
	Note    string
	ActorID *string
}

type Entry struct {
	ID        int64
	UserID    string
	Delta     int64
	Reason    string
	Note      string
	ActorID   *string
	Timestamp time.Time
}

// Clamp bounds a running total to [MinHonor, MaxHonor].
func Clamp(v int64) int64 {
	return min(max(v, MinHonor), MaxHonor)
}
