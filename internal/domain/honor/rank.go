package honor

import (
	"fmt"
	"slices"
)

type Tier struct {
	Threshold int64
	Name      string
	Symbol    string
	Color     int
}

// Title is the name of the guild role that mirrors the tier.
func (t Tier) Title() string {
	return t.Symbol + " " + t.Name
}

// Progress describes how far a balance sits between the tier it holds and the
// next one. Fraction is always within [0, 1].
type Progress struct {
	Fraction float64
	Current  Tier
	Next     Tier
	Into     int64
	Span     int64
}

// RankTable is an ascending, non-empty list of tiers.
type RankTable struct {
	tiers []Tier
}

func NewRankTable(tiers []Tier) (RankTable, error) {
	if len(tiers) == 0 {
		return RankTable{}, fmt.Errorf("%w: no tiers configured", ErrInvalidRankTable)
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Threshold <= tiers[i-1].Threshold {
			return RankTable{}, fmt.Errorf("%w: tier %q threshold %d is not above %q threshold %d",
				ErrInvalidRankTable, tiers[i].Name, tiers[i].Threshold, tiers[i-1].Name, tiers[i-1].Threshold)
		}
	}
	return RankTable{tiers: slices.Clone(tiers)}, nil
}

// DefaultTiers starts at MinHonor so every balance has an exact tier.
func DefaultTiers() []Tier {
	return []Tier{
		{Threshold: MinHonor, Name: "Outcast", Symbol: "💀", Color: 0x4A4A4A},
		{Threshold: 0, Name: "Peasant", Symbol: "🌾", Color: 0x8B7355},
		{Threshold: 1000, Name: "Squire", Symbol: "🛡️", Color: 0x5DADE2},
		{Threshold: 5000, Name: "Knight", Symbol: "⚔️", Color: 0x3498DB},
		{Threshold: 20000, Name: "Lord", Symbol: "🏰", Color: 0x9B59B6},
		{Threshold: 60000, Name: "Duke", Symbol: "🦅", Color: 0xE67E22},
		{Threshold: 120000, Name: "King", Symbol: "👑", Color: 0xF1C40F},
	}
}

func (t RankTable) Tiers() []Tier {
	return slices.Clone(t.tiers)
}

// Resolve returns the tier with the greatest threshold <= balance, or the
// lowest tier when balance is below every threshold.
func (t RankTable) Resolve(balance int64) Tier {
	for i := len(t.tiers) - 1; i >= 0; i-- {
		if t.tiers[i].Threshold <= balance {
			return t.tiers[i]
		}
	}
	return t.tiers[0]
}

func (t RankTable) Progress(balance int64) Progress {
	p := Progress{Current: t.Resolve(balance)}

	next := -1
	for i, tier := range t.tiers {
		if tier.Threshold > balance {
			next = i
			break
		}
	}

	var prev Tier
	switch next {
	case -1:
		last := t.tiers[len(t.tiers)-1]
		prev, p.Next = last, last
	case 0:
		prev, p.Next = t.tiers[0], t.tiers[0]
	default:
		prev, p.Next = t.tiers[next-1], t.tiers[next]
	}

	p.Span = p.Next.Threshold - prev.Threshold
	p.Into = max(balance-prev.Threshold, 0)
	if p.Span > 0 {
		p.Fraction = min(max(float64(p.Into)/float64(p.Span), 0), 1)
	}
	return p
}

// Symbols lists every tier symbol, longest first, for nickname prefix matching.
func (t RankTable) Symbols() []string {
	symbols := make([]string, 0, len(t.tiers))
	for _, tier := range t.tiers {
		if tier.Symbol != "" && !slices.Contains(symbols, tier.Symbol) {
			symbols = append(symbols, tier.Symbol)
		}
	}
	slices.SortFunc(symbols, func(a, b string) int {
		return len(b) - len(a)
	})
	return symbols
}
