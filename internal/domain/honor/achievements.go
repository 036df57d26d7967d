package honor

import (
	"context"
	"fmt"
)

type ConditionKind int

const (
	KindHelperCount ConditionKind = iota
	KindBlessCount
	KindNeverInsulted
	KindTopRank
)

func (k ConditionKind) String() string {
	switch k {
	case KindHelperCount:
		return "helper_count"
	case KindBlessCount:
		return "bless_count"
	case KindNeverInsulted:
		return "never_insulted"
	case KindTopRank:
		return "top_rank"
	default:
		return fmt.Sprintf("condition(%d)", int(k))
	}
}

// Condition is one of a closed set of predicates over ledger aggregates.
type Condition struct {
	Kind ConditionKind
	N    int
}

func HelperCount(n int) Condition { return Condition{Kind: KindHelperCount, N: n} }
func BlessCount(n int) Condition { return Condition{Kind: KindBlessCount, N: n} }
func NeverInsulted() Condition { return Condition{Kind: KindNeverInsulted} }
func TopRank() Condition { return Condition{Kind: KindTopRank} }

type Achievement struct {
	Key         string
	Symbol      string
	Description string
	Condition   Condition
}

func DefaultAchievements() []Achievement {
	return []Achievement{
		{Key: "helping_hand", Symbol: "🤝", Description: "Had 10 helps confirmed", Condition: HelperCount(10)},
		{Key: "pillar", Symbol: "🏛️", Description: "Had 50 helps confirmed", Condition: HelperCount(50)},
		{Key: "blessed", Symbol: "✨", Description: "Received 25 blessings", Condition: BlessCount(25)},
		{Key: "clean_tongue", Symbol: "😇", Description: "Never penalized for profanity", Condition: NeverInsulted()},
		{Key: "champion", Symbol: "🏆", Description: "Holds the highest honor in the guild", Condition: TopRank()},
	}
}

// Unlocked evaluates every achievement live. The first store error aborts
// the evaluation.
func Unlocked(ctx context.Context, repo AggregateReader, userID string, catalogue []Achievement) ([]Achievement, error) {
	unlocked := make([]Achievement, 0, len(catalogue))
	for _, a := range catalogue {
		ok, err := evaluate(ctx, repo, userID, a.Condition)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate achievement %s: %w", a.Key, err)
		}
		if ok {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func evaluate(ctx context.Context, repo AggregateReader, userID string, c Condition) (bool, error) {
	switch c.Kind {
	case KindHelperCount:
		n, err := repo.CountReason(ctx, userID, ReasonHelpConfirmed)
		return n >= c.N, err
	case KindBlessCount:
		n, err := repo.CountReason(ctx, userID, ReasonBless)
		return n >= c.N, err
	case KindNeverInsulted:
		n, err := repo.CountReason(ctx, userID, ReasonProfanity)
		return n == 0, err
	case KindTopRank:
		return repo.IsTopRank(ctx, userID)
	default:
		return false, fmt.Errorf("unknown achievement condition %s", c.Kind)
	}
}
