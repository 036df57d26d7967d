package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error. It matches
// honor.ErrStoreUnavailable as well as the underlying driver error.
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() []error {
	return []error{honor.ErrStoreUnavailable, re.Err}
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError standardizes error handling across repositories
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// Transaction executes a function within a database transaction
func (br *BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(timeoutCtx, nil, fn)
}

func (br *BaseRepository) isPostgres() bool {
	return br.db.Dialect().Name() == dialect.PG
}

// containsExpr is a case-sensitive substring predicate on column. LIKE is
// avoided because SQLite folds ASCII case.
func (br *BaseRepository) containsExpr(column string) string {
	if br.isPostgres() {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}
