package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"golang.org/x/sync/errgroup"
)

// LedgerReader is what the archive exports.
type LedgerReader interface {
	Accounts(ctx context.Context) ([]honor.Account, error)
	EntriesAfter(ctx context.Context, afterID int64) ([]honor.Entry, error)
}

// ObjectUploader is the subset of *s3.Client the archive needs.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ArchiveOptions struct {
	Bucket   string
	Prefix   string
	Interval time.Duration
	Timeout  time.Duration
	Clock    honor.Clock
}

// Snapshot is the JSON document written per run.
type Snapshot struct {
	GeneratedAt time.Time       `json:"generated_at"`
	AfterID     int64           `json:"after_id"`
	Accounts    []honor.Account `json:"accounts"`
	Entries     []honor.Entry   `json:"entries"`
}

// Archive periodically exports balances and new ledger entries to object
// storage. It only reads the ledger.
type Archive struct {
	store     LedgerReader
	uploader  ObjectUploader
	opts      ArchiveOptions
	scheduler gocron.Scheduler

	mu sync.Mutex
	// lastID is the highest entry id already exported.
	lastID int64
}

func NewArchive(store LedgerReader, uploader ObjectUploader, opts ArchiveOptions) *Archive {
	if opts.Interval <= 0 {
		opts.Interval = 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Archive{store: store, uploader: uploader, opts: opts}
}

func (a *Archive) Start() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create archive scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(a.opts.Interval),
		gocron.NewTask(a.scheduledRun),
		gocron.WithName("ledger-archive"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule archive job: %w", err)
	}
	s.Start()
	a.scheduler = s

	slog.Info("Ledger archive scheduled",
		slog.String("type", "sys"),
		slog.String("bucket", a.opts.Bucket),
		slog.Duration("interval", a.opts.Interval))
	return nil
}

func (a *Archive) Stop() error {
	if a.scheduler == nil {
		return nil
	}
	return a.scheduler.Shutdown()
}

func (a *Archive) scheduledRun() {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.Timeout)
	defer cancel()

	start := time.Now()
	key, err := a.RunOnce(ctx)
	if err != nil {
		slog.Error("Ledger archive failed",
			slog.String("type", "error"),
			slog.String("component", "archive"),
			slog.Any("error", err))
		return
	}
	slog.Info("Ledger archived",
		slog.String("type", "sys"),
		slog.String("key", key),
		slog.Duration("took", time.Since(start)))
}

// RunOnce uploads one snapshot and returns its object key. Entries not
// exported by a previous successful run are included; the first run exports
// the full log.
func (a *Archive) RunOnce(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.opts.Clock().UTC()
	snap := Snapshot{GeneratedAt: now, AfterID: a.lastID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Accounts, err = a.store.Accounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Entries, err = a.store.EntriesAfter(gctx, a.lastID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to read ledger: %w", err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	key := path.Join(a.opts.Prefix, now.Format("2006-01-02"), uuid.NewString()+".json")
	if _, err := a.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	for _, e := range snap.Entries {
		a.lastID = max(a.lastID, e.ID)
	}
	return key, nil
}
