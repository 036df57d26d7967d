package commands

import (
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, cmd := range Commands {
		slash, ok := cmd.(discord.SlashCommandCreate)
		require.True(t, ok)
		assert.False(t, seen[slash.Name], "duplicate command %s", slash.Name)
		seen[slash.Name] = true
		assert.NotEmpty(t, slash.Description)
		assert.Equal(t, strings.ToLower(slash.Name), slash.Name)
	}
	assert.Len(t, seen, 14)
}

func TestTierChange(t *testing.T) {
	peasant := honor.Tier{Name: "Peasant", Symbol: "🌾"}
	squire := honor.Tier{Name: "Squire", Symbol: "🛡️"}

	assert.Empty(t, tierChange(honor.Result{Previous: 10, Balance: 20, Before: peasant, After: peasant}))
	assert.Contains(t, tierChange(honor.Result{Previous: 995, Balance: 1005, Before: peasant, After: squire}), "Promoted to **🛡️ Squire**")
	assert.Contains(t, tierChange(honor.Result{Previous: 1005, Balance: 905, Before: squire, After: peasant}), "Demoted to **🌾 Peasant**")
}

func TestResultEmbed(t *testing.T) {
	squire := honor.Tier{Name: "Squire", Symbol: "🛡️", Color: 0x5DADE2}
	embed := resultEmbed("title", "desc", honor.Result{Delta: 10, Previous: 1000, Balance: 1010, Before: squire, After: squire})

	assert.Equal(t, "desc\n**+10** honor • balance 1,010", embed.Description)
	assert.Equal(t, 0x5DADE2, embed.Color)
}

func TestFormatCatalogue(t *testing.T) {
	catalogue := honor.DefaultAchievements()
	got := formatCatalogue(catalogue, catalogue[3:4])

	lines := strings.Split(got, "\n")
	require.Len(t, lines, len(catalogue))
	assert.True(t, strings.HasPrefix(lines[0], "🔒 **helping_hand**"))
	assert.True(t, strings.HasPrefix(lines[3], catalogue[3].Symbol+" **clean_tongue**"))
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, "✅ Ready", availability(true))
	assert.Equal(t, "⏳ Claimed", availability(false))
}

func TestHistoryPage_ActorOnlyForAdministrators(t *testing.T) {
	admin := "42"
	entries := []honor.Entry{
		{Delta: 5, Reason: honor.ReasonAdjustment, Note: "event", ActorID: &admin},
	}

	assert.Equal(t, "`+5` admin adjustment (event)", historyPage(entries, 0, false))
	assert.Equal(t, "`+5` admin adjustment (event) • by <@42>", historyPage(entries, 0, true))
}

func TestSyncEmbed(t *testing.T) {
	t.Run("nothing to do", func(t *testing.T) {
		embed := syncEmbed(honor.SyncReport{})
		assert.Equal(t, "🔄 Roles checked", embed.Title)
		assert.Empty(t, embed.Fields)
	})

	t.Run("partial failure", func(t *testing.T) {
		embed := syncEmbed(honor.SyncReport{Applied: []string{"add ⚔️ Knight"}, Failed: []string{"nick"}})
		require.Len(t, embed.Fields, 2)
		assert.Equal(t, "add ⚔️ Knight", embed.Fields[0].Value)
		assert.Equal(t, "Failed", embed.Fields[1].Name)
		assert.Equal(t, "nick", embed.Fields[1].Value)
	})
}

func TestPollChoices(t *testing.T) {
	assert.Equal(t, []string{"tea", "coffee"}, pollChoices(" tea ", "", "coffee", "  "))
	assert.Len(t, pollChoices("a", "b", "c", "d", "e", "f"), 5)
	assert.Len(t, pollChoices("only", ""), 1)
}

func TestPollEmbed(t *testing.T) {
	embed := pollEmbed("Alice", "Lunch?", []string{"pizza", "ramen", "salad"})

	assert.Equal(t, "📊 Lunch?", embed.Title)
	assert.Equal(t, "1️⃣ pizza\n2️⃣ ramen\n3️⃣ salad", embed.Description)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Poll by Alice", embed.Footer.Text)
}

func TestReportCustomID(t *testing.T) {
	reporter := snowflake.ID(100000000000000002)
	id := reportCustomID("add", reporter, "dang/it now")

	assert.Equal(t, "/report/add/100000000000000002/dang%2Fit%20now", id)

	segments := strings.Split(id, "/")
	require.Len(t, segments, 5)
	word, err := reportedWord(map[string]string{"word": segments[4]})
	require.NoError(t, err)
	assert.Equal(t, "dang/it now", word)

	_, err = reportedWord(map[string]string{"word": "%20"})
	assert.Error(t, err)
}

func TestHasAdministrator(t *testing.T) {
	assert.False(t, hasAdministrator(nil))
	assert.False(t, hasAdministrator(&discord.ResolvedMember{Permissions: discord.PermissionSendMessages}))
	assert.True(t, hasAdministrator(&discord.ResolvedMember{Permissions: discord.PermissionAdministrator}))
}
