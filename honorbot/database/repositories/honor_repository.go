package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/honorguild/honorbot/honorbot/database/models"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/uptrace/bun"
)

// HonorRepository is the ledger store plus the bad-word table the profanity
// filter reads.
type HonorRepository interface {
	honor.Repository

	EntriesAfter(ctx context.Context, afterID int64) ([]honor.Entry, error)
	ListBadWords(ctx context.Context) ([]string, error)
	AddBadWord(ctx context.Context, word, addedBy string) (bool, error)
	RemoveBadWord(ctx context.Context, word string) (bool, error)
}

type honorRepository struct {
	*BaseRepository
	locks *honor.KeyLock
	clock honor.Clock
}

type HonorOption func(*honorRepository)

// WithClock overrides the time source used for every timestamp the store
// writes and for the daily and lootbox windows.
func WithClock(clock honor.Clock) HonorOption {
	return func(r *honorRepository) {
		r.clock = clock
	}
}

func NewHonorRepository(db *bun.DB, opts ...HonorOption) HonorRepository {
	r := &honorRepository{
		BaseRepository: NewBaseRepository(db),
		locks:          honor.NewKeyLock(),
		clock:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *honorRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	row := new(models.UserHonor)
	err := r.db.NewSelect().Model(row).Where("user_id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, r.HandleError("get_balance", "user_honor", err)
	}
	return row.Honor, nil
}

// ApplyDelta serializes writers per user with an in-process lock and, on
// Postgres, a row lock. The log records the requested delta even when the
// balance saturates.
func (r *honorRepository) ApplyDelta(ctx context.Context, c honor.Change) (int64, error) {
	balance, err := r.mutate(ctx, c, nil)
	if err != nil {
		return 0, r.HandleError("apply_delta", "honor_log", err)
	}
	return balance, nil
}

// mutate runs before (if any) and the delta in one transaction under the
// user's lock.
func (r *honorRepository) mutate(ctx context.Context, c honor.Change, before func(context.Context, bun.Tx) error) (int64, error) {
	unlock := r.locks.Lock(c.UserID)
	defer unlock()

	var balance int64
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if before != nil {
			if err := before(ctx, tx); err != nil {
				return err
			}
		}

		if _, err := tx.NewInsert().
			Model(&models.UserHonor{UserID: c.UserID}).
			On("CONFLICT (user_id) DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}

		row := new(models.UserHonor)
		q := tx.NewSelect().Model(row).Where("user_id = ?", c.UserID)
		if r.isPostgres() {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			return err
		}

		balance = honor.Clamp(row.Honor + c.Delta)
		if _, err := tx.NewUpdate().
			Model((*models.UserHonor)(nil)).
			Set("honor = ?", balance).
			Where("user_id = ?", c.UserID).
			Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewInsert().Model(&models.HonorLog{
			UserID:    c.UserID,
			Delta:     c.Delta,
			Reason:    c.Reason,
			Note:      c.Note,
			ByUser:    c.ActorID,
			Timestamp: r.clock().UTC(),
		}).Exec(ctx)
		return err
	})
	return balance, err
}

// CountReason counts entries whose reason contains substring, case-sensitively.
func (r *honorRepository) CountReason(ctx context.Context, userID string, substring string) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.HonorLog)(nil)).
		Where("user_id = ?", userID).
		Where(r.containsExpr("reason"), substring).
		Count(ctx)
	if err != nil {
		return 0, r.HandleError("count_reason", "honor_log", err)
	}
	return count, nil
}

func (r *honorRepository) IsTopRank(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	top := new(models.UserHonor)
	err := r.db.NewSelect().
		Model(top).
		OrderExpr("honor DESC, user_id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.HandleError("is_top_rank", "user_honor", err)
	}
	return top.UserID == userID, nil
}

func (r *honorRepository) RecentEntries(ctx context.Context, userID string, limit int) ([]honor.Entry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.HonorLog
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("ts DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("recent_entries", "honor_log", err)
	}
	return toEntries(rows), nil
}

func (r *honorRepository) Leaderboard(ctx context.Context, n int) ([]honor.Account, []honor.Account, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var top, flop []models.UserHonor
	if err := r.db.NewSelect().
		Model(&top).
		OrderExpr("honor DESC, user_id ASC").
		Limit(n).
		Scan(ctx); err != nil {
		return nil, nil, r.HandleError("leaderboard_top", "user_honor", err)
	}
	if err := r.db.NewSelect().
		Model(&flop).
		OrderExpr("honor ASC, user_id ASC").
		Limit(n).
		Scan(ctx); err != nil {
		return nil, nil, r.HandleError("leaderboard_flop", "user_honor", err)
	}
	return toAccounts(top), toAccounts(flop), nil
}

func (r *honorRepository) CanClaimDaily(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	row := new(models.DailyBonus)
	err := r.db.NewSelect().Model(row).Where("user_id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, r.HandleError("can_claim_daily", "daily_bonus", err)
	}
	return !row.LastClaimed.UTC().Equal(r.today()), nil
}

func (r *honorRepository) ClaimDaily(ctx context.Context, c honor.Change) (int64, error) {
	balance, err := r.mutate(ctx, c, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&models.DailyBonus{UserID: c.UserID, LastClaimed: r.today()}).
			On("CONFLICT (user_id) DO UPDATE").
			Set("last_claimed = EXCLUDED.last_claimed").
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, r.HandleError("claim_daily", "daily_bonus", err)
	}
	return balance, nil
}

// today is the process-local calendar date encoded as midnight UTC, which
// keeps the stored value independent of the session time zone.
func (r *honorRepository) today() time.Time {
	y, m, d := r.clock().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *honorRepository) CanOpenLootbox(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	last := new(models.LootLog)
	err := r.db.NewSelect().
		Model(last).
		Where("user_id = ?", userID).
		OrderExpr("ts DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, r.HandleError("can_open_lootbox", "loot_log", err)
	}
	return r.clock().Sub(last.Timestamp) >= honor.LootboxCooldown, nil
}

func (r *honorRepository) LogLootbox(ctx context.Context, c honor.Change) (int64, error) {
	balance, err := r.mutate(ctx, c, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&models.LootLog{
			UserID:    c.UserID,
			Timestamp: r.clock().UTC(),
			Reward:    c.Delta,
		}).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, r.HandleError("log_lootbox", "loot_log", err)
	}
	return balance, nil
}

func (r *honorRepository) Accounts(ctx context.Context) ([]honor.Account, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.UserHonor
	if err := r.db.NewSelect().Model(&rows).Order("user_id").Scan(ctx); err != nil {
		return nil, r.HandleError("accounts", "user_honor", err)
	}
	return toAccounts(rows), nil
}

// Entries returns the user's log in application order.
func (r *honorRepository) Entries(ctx context.Context, userID string) ([]honor.Entry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.HonorLog
	if err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("id").
		Scan(ctx); err != nil {
		return nil, r.HandleError("entries", "honor_log", err)
	}
	return toEntries(rows), nil
}

// EntriesAfter returns entries with an id above afterID, oldest first.
func (r *honorRepository) EntriesAfter(ctx context.Context, afterID int64) ([]honor.Entry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.HonorLog
	if err := r.db.NewSelect().
		Model(&rows).
		Where("id > ?", afterID).
		Order("id").
		Scan(ctx); err != nil {
		return nil, r.HandleError("entries_after", "honor_log", err)
	}
	return toEntries(rows), nil
}

func (r *honorRepository) ListBadWords(ctx context.Context) ([]string, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.BadWord
	if err := r.db.NewSelect().Model(&rows).Order("word").Scan(ctx); err != nil {
		return nil, r.HandleError("list", "bad_words", err)
	}
	words := make([]string, 0, len(rows))
	for _, w := range rows {
		words = append(words, w.Word)
	}
	return words, nil
}

// AddBadWord stores word lower-cased and reports whether it was new.
func (r *honorRepository) AddBadWord(ctx context.Context, word, addedBy string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewInsert().Model(&models.BadWord{
		Word:    normalizeWord(word),
		AddedBy: addedBy,
		AddedAt: r.clock().UTC(),
	}).On("CONFLICT (word) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, r.HandleError("add", "bad_words", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleError("add", "bad_words", err)
	}
	return n > 0, nil
}

func (r *honorRepository) RemoveBadWord(ctx context.Context, word string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.BadWord)(nil)).
		Where("word = ?", normalizeWord(word)).
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("remove", "bad_words", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleError("remove", "bad_words", err)
	}
	return n > 0, nil
}

func normalizeWord(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}

func toAccounts(rows []models.UserHonor) []honor.Account {
	out := make([]honor.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, honor.Account{UserID: row.UserID, Balance: row.Honor})
	}
	return out
}

func toEntries(rows []models.HonorLog) []honor.Entry {
	out := make([]honor.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, honor.Entry{
			ID:        row.ID,
			UserID:    row.UserID,
			Delta:     row.Delta,
			Reason:    row.Reason,
			Note:      row.Note,
			ActorID:   row.ByUser,
			Timestamp: row.Timestamp,
		})
	}
	return out
}
