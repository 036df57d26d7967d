package honor

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxNicknameLength is Discord's nickname limit in runes.
const MaxNicknameLength = 32

type RewardRole struct {
	Threshold int64
	Role      string
}

// RewardTable maps honor thresholds to reward role names.
type RewardTable []RewardRole

func NewRewardTable(roles []RewardRole) (RewardTable, error) {
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if strings.TrimSpace(r.Role) == "" {
			return nil, fmt.Errorf("%w: empty role name at threshold %d", ErrInvalidRewardRole, r.Threshold)
		}
		if _, dup := seen[r.Role]; dup {
			return nil, fmt.Errorf("%w: role %q listed twice", ErrInvalidRewardRole, r.Role)
		}
		seen[r.Role] = struct{}{}
	}
	table := slices.Clone(roles)
	slices.SortStableFunc(table, func(a, b RewardRole) int {
		switch {
		case a.Threshold < b.Threshold:
			return -1
		case a.Threshold > b.Threshold:
			return 1
		}
		return 0
	})
	return table, nil
}

// MemberState is what the platform currently shows for a member.
type MemberState struct {
	Balance     int64
	Roles       []string
	Nickname    string
	DisplayName string
}

// Diff is the minimal set of mutations that brings a member in line with
// their balance. Nickname is nil when it already matches.
type Diff struct {
	Add      []string
	Remove   []string
	Nickname *string
}

func (d Diff) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0 && d.Nickname == nil
}

// Reconcile computes the diff between the observed member and the state
// implied by their balance. It is pure: the same inputs give the same diff.
func Reconcile(state MemberState, ranks RankTable, rewards RewardTable) Diff {
	have := make(map[string]struct{}, len(state.Roles))
	for _, r := range state.Roles {
		have[r] = struct{}{}
	}

	var diff Diff
	want := func(role string, on bool) {
		_, present := have[role]
		switch {
		case on && !present:
			diff.Add = append(diff.Add, role)
		case !on && present:
			diff.Remove = append(diff.Remove, role)
		}
	}

	for _, r := range rewards {
		want(r.Role, r.Threshold <= state.Balance)
	}

	current := ranks.Resolve(state.Balance)
	for _, tier := range ranks.tiers {
		want(tier.Title(), tier.Title() == current.Title())
	}

	shown := state.Nickname
	if shown == "" {
		shown = state.DisplayName
	}
	target := ComposeNickname(current, state.Balance, BaseName(shown, ranks.Symbols()))
	if target != state.Nickname {
		diff.Nickname = &target
	}
	return diff
}

// ComposeNickname renders "<symbol> <signed balance> <base>", shortening the
// base so the result fits MaxNicknameLength.
func ComposeNickname(tier Tier, balance int64, base string) string {
	prefix := fmt.Sprintf("%s %+d", tier.Symbol, balance)
	room := MaxNicknameLength - utf8.RuneCountInString(prefix) - 1
	if room <= 0 {
		return prefix
	}
	if utf8.RuneCountInString(base) > room {
		base = strings.TrimSpace(string([]rune(base)[:room]))
	}
	if base == "" {
		return prefix
	}
	return prefix + " " + base
}

// BaseName strips a previously applied "<symbol> <signed balance> " prefix.
// Names without such a prefix are returned unchanged.
func BaseName(name string, symbols []string) string {
	for _, sym := range symbols {
		rest, ok := strings.CutPrefix(name, sym+" ")
		if !ok {
			continue
		}
		if base, ok := cutSignedNumber(rest); ok {
			return base
		}
	}
	return name
}

func cutSignedNumber(s string) (string, bool) {
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return "", false
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 1 {
		return "", false
	}
	if i == len(s) {
		return "", true
	}
	if s[i] != ' ' {
		return "", false
	}
	return s[i+1:], true
}

type SyncState int

const (
	Unsynced SyncState = iota
	Synced
)

func (s SyncState) String() string {
	if s == Synced {
		return "synced"
	}
	return "unsynced"
}

// SyncReport records the outcome of applying a Diff. Failed sub-operations are
// retried by the next reconciliation since the diff is recomputed each time.
type SyncReport struct {
	Applied []string
	Failed  []string
}

func (r SyncReport) State() SyncState {
	if len(r.Failed) == 0 {
		return Synced
	}
	return Unsynced
}
