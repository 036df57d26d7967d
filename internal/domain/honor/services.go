package honor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

type Awards struct {
	Thanks           int64
	Bless            int64
	HelpConfirmed    int64
	ProfanityPenalty int64
	// DailyBonus is drawn uniformly from [DailyBonus, DailyBonusMax]. A max
	// at or below DailyBonus makes the bonus fixed.
	DailyBonus    int64
	DailyBonusMax int64
}

func DefaultAwards() Awards {
	return Awards{
		Thanks:           10,
		Bless:            25,
		HelpConfirmed:    50,
		ProfanityPenalty: -100,
		DailyBonus:       10,
		DailyBonusMax:    30,
	}
}

type LootboxPrize struct {
	Reward int64
	Weight int
}

func DefaultLootbox() []LootboxPrize {
	return []LootboxPrize{
		{Reward: 5, Weight: 50},
		{Reward: 25, Weight: 30},
		{Reward: 100, Weight: 15},
		{Reward: 500, Weight: 4},
		{Reward: 2500, Weight: 1},
	}
}

// Settings is the static configuration a Service is built from. Zero-valued
// fields fall back to the defaults.
type Settings struct {
	Tiers        []Tier
	Rewards      []RewardRole
	Awards       *Awards
	Lootbox      []LootboxPrize
	Achievements []Achievement
	HistorySize  int
	// Roll returns a uniform int in [0, n). Defaults to math/rand/v2.
	Roll func(n int) int
}

// Result reports the effect of one ledger mutation.
type Result struct {
	UserID   string
	Delta    int64
	Previous int64
	Balance  int64
	Before   Tier
	After    Tier
}

func (r Result) TierChanged() bool {
	return r.Before.Title() != r.After.Title()
}

type LootResult struct {
	Result
	Reward int64
}

type Profile struct {
	UserID       string
	Balance      int64
	Tier         Tier
	Progress     Progress
	Achievements []Achievement
	Recent       []Entry
	CanDaily     bool
	CanLootbox   bool
}

type Standing struct {
	Account
	Tier Tier
}

type Board struct {
	Top  []Standing
	Flop []Standing
}

// Service is the application context every honor operation runs against.
type Service struct {
	repo         Repository
	ranks        RankTable
	rewards      RewardTable
	awards       Awards
	lootbox      []LootboxPrize
	lootWeight   int
	achievements []Achievement
	historySize  int
	roll         func(n int) int
	claims       *KeyLock
}

func NewService(repo Repository, s Settings) (*Service, error) {
	tiers := s.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	ranks, err := NewRankTable(tiers)
	if err != nil {
		return nil, err
	}

	rewards, err := NewRewardTable(s.Rewards)
	if err != nil {
		return nil, err
	}
	for _, r := range rewards {
		for _, t := range ranks.tiers {
			if r.Role == t.Title() {
				return nil, fmt.Errorf("%w: role %q collides with a tier title", ErrInvalidRewardRole, r.Role)
			}
		}
	}

	svc := &Service{
		repo:         repo,
		ranks:        ranks,
		rewards:      rewards,
		awards:       DefaultAwards(),
		lootbox:      s.Lootbox,
		achievements: s.Achievements,
		historySize:  s.HistorySize,
		roll:         s.Roll,
		claims:       NewKeyLock(),
	}
	if s.Awards != nil {
		svc.awards = *s.Awards
	}
	if len(svc.lootbox) == 0 {
		svc.lootbox = DefaultLootbox()
	}
	for _, p := range svc.lootbox {
		if p.Weight < 0 {
			return nil, fmt.Errorf("lootbox prize %d has negative weight", p.Reward)
		}
		svc.lootWeight += p.Weight
	}
	if svc.lootWeight == 0 {
		return nil, ErrEmptyLootTable
	}
	if svc.achievements == nil {
		svc.achievements = DefaultAchievements()
	}
	if svc.historySize <= 0 {
		svc.historySize = 10
	}
	if svc.roll == nil {
		svc.roll = rand.IntN
	}
	return svc, nil
}

func (s *Service) Ranks() RankTable { return s.ranks }
func (s *Service) Rewards() RewardTable { return s.rewards }
func (s *Service) Awards() Awards { return s.awards }
func (s *Service) Catalogue() []Achievement { return s.achievements }

func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// ApplyDelta records a delta and reports the tier transition.
func (s *Service) ApplyDelta(ctx context.Context, userID string, delta int64, reason string, actorID *string) (Result, error) {
	return s.record(ctx, Change{UserID: userID, Delta: delta, Reason: reason, ActorID: actorID}, s.repo.ApplyDelta)
}

// record commits c through write. Previous is read outside the ledger's
// critical section and is informational only.
func (s *Service) record(ctx context.Context, c Change, write func(context.Context, Change) (int64, error)) (Result, error) {
	previous, err := s.repo.GetBalance(ctx, c.UserID)
	if err != nil {
		return Result{}, err
	}
	balance, err := write(ctx, c)
	if err != nil {
		return Result{}, err
	}
	return Result{
		UserID:   c.UserID,
		Delta:    c.Delta,
		Previous: previous,
		Balance:  balance,
		Before:   s.ranks.Resolve(previous),
		After:    s.ranks.Resolve(balance),
	}, nil
}

func (s *Service) Thank(ctx context.Context, actorID, targetID string) (Result, error) {
	return s.social(ctx, actorID, targetID, s.awards.Thanks, ReasonThanks)
}

func (s *Service) Bless(ctx context.Context, actorID, targetID string) (Result, error) {
	return s.social(ctx, actorID, targetID, s.awards.Bless, ReasonBless)
}

// ConfirmHelp credits helperID once the helped member confirms.
func (s *Service) ConfirmHelp(ctx context.Context, requesterID, helperID string) (Result, error) {
	return s.social(ctx, requesterID, helperID, s.awards.HelpConfirmed, ReasonHelpConfirmed)
}

func (s *Service) social(ctx context.Context, actorID, targetID string, amount int64, reason string) (Result, error) {
	if actorID == targetID {
		return Result{}, ErrSelfTarget
	}
	return s.ApplyDelta(ctx, targetID, amount, reason, &actorID)
}

// Penalize keeps the matched word in the entry's note.
func (s *Service) Penalize(ctx context.Context, userID, word string) (Result, error) {
	return s.record(ctx, Change{
		UserID: userID,
		Delta:  s.awards.ProfanityPenalty,
		Reason: ReasonProfanity,
		Note:   word,
	}, s.repo.ApplyDelta)
}

// Adjust applies an arbitrary delta on behalf of an administrator. isAdmin
// comes from the platform; no other authorization happens here.
func (s *Service) Adjust(ctx context.Context, adminID, targetID string, delta int64, note string, isAdmin bool) (Result, error) {
	if !isAdmin {
		return Result{}, ErrNotAdministrator
	}
	return s.record(ctx, Change{
		UserID:  targetID,
		Delta:   delta,
		Reason:  ReasonAdjustment,
		Note:    note,
		ActorID: &adminID,
	}, s.repo.ApplyDelta)
}

// ClaimDaily credits the bonus and marks the claim in the same store
// transaction.
func (s *Service) ClaimDaily(ctx context.Context, userID string) (Result, error) {
	unlock := s.claims.Lock("daily:" + userID)
	defer unlock()

	ok, err := s.repo.CanClaimDaily(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrAlreadyClaimed
	}
	return s.record(ctx, Change{UserID: userID, Delta: s.dailyBonus(), Reason: ReasonDailyBonus}, s.repo.ClaimDaily)
}

func (s *Service) dailyBonus() int64 {
	lo, hi := s.awards.DailyBonus, s.awards.DailyBonusMax
	if hi <= lo {
		return lo
	}
	return lo + int64(s.roll(int(hi-lo+1)))
}

func (s *Service) OpenLootbox(ctx context.Context, userID string) (LootResult, error) {
	unlock := s.claims.Lock("lootbox:" + userID)
	defer unlock()

	ok, err := s.repo.CanOpenLootbox(ctx, userID)
	if err != nil {
		return LootResult{}, err
	}
	if !ok {
		return LootResult{}, ErrAlreadyClaimed
	}

	reward := s.drawPrize()
	res, err := s.record(ctx, Change{UserID: userID, Delta: reward, Reason: ReasonLootbox}, s.repo.LogLootbox)
	if err != nil {
		return LootResult{}, err
	}
	return LootResult{Result: res, Reward: reward}, nil
}

func (s *Service) drawPrize() int64 {
	n := s.roll(s.lootWeight)
	for _, p := range s.lootbox {
		if n < p.Weight {
			return p.Reward
		}
		n -= p.Weight
	}
	return s.lootbox[len(s.lootbox)-1].Reward
}

func (s *Service) Achievements(ctx context.Context, userID string) ([]Achievement, error) {
	return Unlocked(ctx, s.repo, userID, s.achievements)
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]Entry, error) {
	return s.repo.RecentEntries(ctx, userID, limit)
}

func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	p := Profile{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p.Balance, err = s.repo.GetBalance(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Achievements, err = Unlocked(gctx, s.repo, userID, s.achievements)
		return err
	})
	g.Go(func() error {
		var err error
		p.Recent, err = s.repo.RecentEntries(gctx, userID, s.historySize)
		return err
	})
	g.Go(func() error {
		var err error
		p.CanDaily, err = s.repo.CanClaimDaily(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		p.CanLootbox, err = s.repo.CanOpenLootbox(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Profile{}, fmt.Errorf("failed to load profile for %s: %w", userID, err)
	}

	p.Tier = s.ranks.Resolve(p.Balance)
	p.Progress = s.ranks.Progress(p.Balance)
	return p, nil
}

func (s *Service) Leaderboard(ctx context.Context, n int) (Board, error) {
	top, flop, err := s.repo.Leaderboard(ctx, n)
	if err != nil {
		return Board{}, err
	}
	return Board{Top: s.standings(top), Flop: s.standings(flop)}, nil
}

func (s *Service) standings(accounts []Account) []Standing {
	out := make([]Standing, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Standing{Account: a, Tier: s.ranks.Resolve(a.Balance)})
	}
	return out
}

// Reconcile fills in the balance-independent inputs and returns the diff.
func (s *Service) Reconcile(state MemberState) Diff {
	return Reconcile(state, s.ranks, s.rewards)
}

// Drift is an account whose stored balance does not match a replay of its log.
type Drift struct {
	UserID   string
	Stored   int64
	Replayed int64
	Entries  int
}

// Verify replays every account's ledger with step-wise clamping.
func (s *Service) Verify(ctx context.Context) ([]Drift, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, a := range accounts {
		entries, err := s.repo.Entries(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		replayed := Replay(entries)
		if replayed != a.Balance {
			drifts = append(drifts, Drift{UserID: a.UserID, Stored: a.Balance, Replayed: replayed, Entries: len(entries)})
		}
	}
	return drifts, nil
}

// Replay folds entries, oldest first, the way ApplyDelta does.
func Replay(entries []Entry) int64 {
	var balance int64
	for _, e := range entries {
		balance = Clamp(balance + e.Delta)
	}
	return balance
}

// IsClaimRejection reports whether err is a normal negative claim result.
func IsClaimRejection(err error) bool {
	return errors.Is(err, ErrAlreadyClaimed)
}
