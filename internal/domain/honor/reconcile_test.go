package honor

import (
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRewards(t *testing.T) RewardTable {
	t.Helper()
	rewards, err := NewRewardTable([]RewardRole{
		{Threshold: 500, Role: "Trusted"},
		{Threshold: 100, Role: "Friendly"},
		{Threshold: 5000, Role: "Veteran"},
	})
	require.NoError(t, err)
	return rewards
}

// apply mirrors what the member reflector does with a diff.
func apply(state MemberState, diff Diff) MemberState {
	roles := slices.DeleteFunc(slices.Clone(state.Roles), func(r string) bool {
		return slices.Contains(diff.Remove, r)
	})
	roles = append(roles, diff.Add...)
	state.Roles = roles
	if diff.Nickname != nil {
		state.Nickname = *diff.Nickname
	}
	return state
}

func TestNewRewardTable(t *testing.T) {
	rewards := testRewards(t)
	assert.Equal(t, []string{"Friendly", "Trusted", "Veteran"}, []string{rewards[0].Role, rewards[1].Role, rewards[2].Role})

	_, err := NewRewardTable([]RewardRole{{Threshold: 1, Role: "A"}, {Threshold: 2, Role: "A"}})
	assert.ErrorIs(t, err, ErrInvalidRewardRole)

	_, err = NewRewardTable([]RewardRole{{Threshold: 1, Role: "  "}})
	assert.ErrorIs(t, err, ErrInvalidRewardRole)
}

func TestReconcile_Roles(t *testing.T) {
	ranks := feudalTable(t)
	rewards := testRewards(t)

	diff := Reconcile(MemberState{
		Balance:     1200,
		Roles:       []string{"Veteran", "🌾 Peasant", "Unrelated"},
		DisplayName: "alice",
	}, ranks, rewards)

	assert.ElementsMatch(t, []string{"Friendly", "Trusted", "⚔️ Knight"}, diff.Add)
	assert.ElementsMatch(t, []string{"Veteran", "🌾 Peasant"}, diff.Remove)
	require.NotNil(t, diff.Nickname)
	assert.Equal(t, "⚔️ +1200 alice", *diff.Nickname)
}

func TestReconcile_Idempotent(t *testing.T) {
	ranks := feudalTable(t)
	rewards := testRewards(t)

	starts := []MemberState{
		{DisplayName: "bob"},
		{Roles: []string{"Veteran", "Trusted", "🏰 Lord"}, Nickname: "🏰 +9000 bob", DisplayName: "bob"},
		{Roles: []string{"Friendly"}, Nickname: "a very long nickname that will not fit at all"},
	}
	balances := []int64{MinHonor, -1, 0, 99, 100, 999, 1000, 5000, MaxHonor}

	for _, start := range starts {
		for _, balance := range balances {
			state := start
			state.Balance = balance

			synced := apply(state, Reconcile(state, ranks, rewards))
			again := Reconcile(synced, ranks, rewards)
			assert.True(t, again.Empty(), "balance %d from %+v left %+v", balance, start, again)
			assert.LessOrEqual(t, utf8.RuneCountInString(synced.Nickname), MaxNicknameLength)
		}
	}
}

func TestReconcile_NicknameKeepsBaseAcrossBalances(t *testing.T) {
	ranks := feudalTable(t)

	state := MemberState{Balance: 50, DisplayName: "carol"}
	state = apply(state, Reconcile(state, ranks, nil))
	assert.Equal(t, "🌾 +50 carol", state.Nickname)

	state.Balance = 6000
	state = apply(state, Reconcile(state, ranks, nil))
	assert.Equal(t, "🏰 +6000 carol", state.Nickname)

	state.Balance = -20
	state = apply(state, Reconcile(state, ranks, nil))
	assert.Equal(t, "🌾 -20 carol", state.Nickname)
}

func TestBaseName(t *testing.T) {
	symbols := []string{"⚔️", "🌾"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "decorated", in: "⚔️ +1200 alice", want: "alice"},
		{name: "negative", in: "🌾 -3 bob", want: "bob"},
		{name: "prefix only", in: "🌾 +0", want: ""},
		{name: "plain name", in: "alice", want: "alice"},
		{name: "symbol without number", in: "🌾 harvest", want: "🌾 harvest"},
		{name: "unsigned number", in: "🌾 12 bob", want: "🌾 12 bob"},
		{name: "name containing spaces", in: "⚔️ +5 sir lancelot", want: "sir lancelot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.in, symbols))
		})
	}
}

func TestComposeNickname_Truncates(t *testing.T) {
	tier := Tier{Name: "King", Symbol: "👑"}
	nick := ComposeNickname(tier, 144000, "Bartholomew the Exceedingly Verbose")

	assert.Equal(t, MaxNicknameLength, utf8.RuneCountInString(nick))
	assert.Equal(t, "👑 +144000 Bartholomew the Exceed", nick)

	assert.Equal(t, "👑 +1", ComposeNickname(tier, 1, ""))
}

func TestSyncReport_State(t *testing.T) {
	assert.Equal(t, Synced, SyncReport{Applied: []string{"add Trusted"}}.State())
	assert.Equal(t, Unsynced, SyncReport{Failed: []string{"nickname"}}.State())
	assert.Equal(t, "unsynced", Unsynced.String())
}
