package honor

import "errors"

var (
	// ErrStoreUnavailable is matched by every storage I/O failure.
	ErrStoreUnavailable = errors.New("honor store unavailable")

	ErrAlreadyClaimed    = errors.New("reward already claimed")
	ErrSelfTarget        = errors.New("cannot target yourself")
	ErrNotAdministrator  = errors.New("administrator permission required")
	ErrInvalidRankTable  = errors.New("invalid rank table")
	ErrInvalidRewardRole = errors.New("invalid reward role")
	ErrEmptyLootTable    = errors.New("lootbox table is empty")
)
