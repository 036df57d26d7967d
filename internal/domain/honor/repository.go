package honor

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Repository is the ledger store. Implementations serialize ApplyDelta per
// user and never update or delete ledger entries.
type Repository interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	ApplyDelta(ctx context.Context, c Change) (int64, error)
	CountReason(ctx context.Context, userID string, substring string) (int, error)
	IsTopRank(ctx context.Context, userID string) (bool, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]Entry, error)
	Leaderboard(ctx context.Context, n int) (top []Account, flop []Account, err error)
	CanClaimDaily(ctx context.Context, userID string) (bool, error)
	// ClaimDaily marks today's claim and applies c in one transaction.
	ClaimDaily(ctx context.Context, c Change) (int64, error)
	CanOpenLootbox(ctx context.Context, userID string) (bool, error)
	// LogLootbox records c.Delta as the reward and applies c in one transaction.
	LogLootbox(ctx context.Context, c Change) (int64, error)
	Accounts(ctx context.Context) ([]Account, error)
	Entries(ctx context.Context, userID string) ([]Entry, error)
}

// AggregateReader is the subset of the ledger achievements are evaluated against.
type AggregateReader interface {
	CountReason(ctx context.Context, userID string, substring string) (int, error)
	IsTopRank(ctx context.Context, userID string) (bool, error)
}
