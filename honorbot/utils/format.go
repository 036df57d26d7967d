package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/honorguild/honorbot/internal/domain/honor"
)

func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if n < 0 {
		str = str[1:] // Remove minus sign for processing
	}

	var result []byte
	for i := len(str) - 1; i >= 0; i-- {
		if (len(str)-i-1)%3 == 0 && i != len(str)-1 {
			result = append([]byte{','}, result...)
		}
		result = append([]byte{str[i]}, result...)
	}

	if n < 0 {
		return "-" + string(result)
	}
	return string(result)
}

// FormatSigned always carries a sign, e.g. "+1,000" or "-100".
func FormatSigned(n int64) string {
	if n < 0 {
		return FormatNumber(n)
	}
	return "+" + FormatNumber(n)
}

// ProgressBar renders fraction (clamped to [0, 1]) as width cells.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = math.Min(math.Max(fraction, 0), 1)
	filled := int(math.Round(fraction * float64(width)))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// FormatProgress describes how far a member is into their tier.
func FormatProgress(p honor.Progress, width int) string {
	if p.Span == 0 {
		return fmt.Sprintf("%s %s\nHighest tier reached", p.Current.Title(), ProgressBar(1, width))
	}
	return fmt.Sprintf("%s %s %s\n%s / %s to next tier",
		p.Current.Title(), ProgressBar(p.Fraction, width), p.Next.Title(),
		FormatNumber(p.Into), FormatNumber(p.Span))
}

func Mention(userID string) string {
	return "<@" + userID + ">"
}

// FormatEntry renders one ledger line for history listings. The actor is
// only shown when withActor is set.
func FormatEntry(e honor.Entry, withActor bool) string {
	line := fmt.Sprintf("`%s` %s", FormatSigned(e.Delta), e.Reason)
	if e.Note != "" {
		line += " (" + e.Note + ")"
	}
	if withActor && e.ActorID != nil {
		line += " • by " + Mention(*e.ActorID)
	}
	if !e.Timestamp.IsZero() {
		line += fmt.Sprintf(" • <t:%d:R>", e.Timestamp.Unix())
	}
	return line
}

// FormatStandings renders a ranked leaderboard column.
func FormatStandings(standings []honor.Standing) string {
	if len(standings) == 0 {
		return "*Nobody yet*"
	}
	var sb strings.Builder
	for i, s := range standings {
		fmt.Fprintf(&sb, "`%2d.` %s %s • **%s**\n", i+1, s.Tier.Symbol, Mention(s.UserID), FormatNumber(s.Balance))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// PageBounds returns the [start, end) slice bounds of page for total items.
func PageBounds(page, perPage, total int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}

// PageCount is at least one so empty listings still render a page.
func PageCount(total, perPage int) int {
	if total == 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
