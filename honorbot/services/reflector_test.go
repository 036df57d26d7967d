package services

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/honorguild/honorbot/internal/domain/honor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	guildID  = snowflake.ID(1)
	memberID = snowflake.ID(100000000000000001)
)

type fakeGuild struct {
	mu          sync.Mutex
	roles       []discord.Role
	member      discord.Member
	nickErr     error
	addRoleErrs map[snowflake.ID]error
	createErr   error
	created     []discord.Role
}

func (g *fakeGuild) Member(context.Context, snowflake.ID, snowflake.ID) (*discord.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := g.member
	m.RoleIDs = slices.Clone(g.member.RoleIDs)
	return &m, nil
}

func (g *fakeGuild) GuildRoles(context.Context, snowflake.ID) ([]discord.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.roles), nil
}

func (g *fakeGuild) CreateRole(_ context.Context, _ snowflake.ID, name string, color int) (*discord.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	role := discord.Role{ID: snowflake.ID(1000 + len(g.roles)), Name: name, Color: color}
	g.roles = append(g.roles, role)
	g.created = append(g.created, role)
	return &role, nil
}

func (g *fakeGuild) SetNickname(_ context.Context, _, _ snowflake.ID, nick string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.nickErr != nil {
		return g.nickErr
	}
	g.member.Nick = &nick
	return nil
}

func (g *fakeGuild) AddRole(_ context.Context, _, _ snowflake.ID, roleID snowflake.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.addRoleErrs[roleID]; err != nil {
		return err
	}
	g.member.RoleIDs = append(g.member.RoleIDs, roleID)
	return nil
}

func (g *fakeGuild) RemoveRole(_ context.Context, _, _ snowflake.ID, roleID snowflake.ID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.member.RoleIDs = slices.DeleteFunc(g.member.RoleIDs, func(id snowflake.ID) bool { return id == roleID })
	return nil
}

func newGuild() *fakeGuild {
	return &fakeGuild{
		roles: []discord.Role{
			{ID: 10, Name: "Friendly"},
			{ID: 11, Name: "Trusted"},
			{ID: 20, Name: "🌾 Peasant"},
			{ID: 21, Name: "🛡️ Squire"},
			{ID: 30, Name: "Moderator"},
		},
		member: discord.Member{
			User:    discord.User{ID: memberID, Username: "alice"},
			RoleIDs: []snowflake.ID{20, 30},
		},
	}
}

func newReflector(t *testing.T, balance int64, guild MemberClient) *Reflector {
	t.Helper()
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().GetBalance(gomock.Any(), memberID.String()).Return(balance, nil).AnyTimes()

	svc, err := honor.NewService(repo, honor.Settings{
		Rewards: []honor.RewardRole{
			{Threshold: 100, Role: "Friendly"},
			{Threshold: 500, Role: "Trusted"},
			{Threshold: 2000, Role: "Veteran"},
		},
	})
	require.NoError(t, err)

	r := NewReflector(svc, 0)
	r.SetClient(guild)
	return r
}

func TestReflector_SyncAppliesDiff(t *testing.T) {
	guild := newGuild()
	r := newReflector(t, 1200, guild)

	report, err := r.Sync(context.Background(), guildID, memberID)
	require.NoError(t, err)
	assert.Equal(t, honor.Synced, report.State())

	require.NotNil(t, guild.member.Nick)
	assert.Equal(t, "🛡️ +1200 alice", *guild.member.Nick)
	assert.ElementsMatch(t, []snowflake.ID{10, 11, 21, 30}, guild.member.RoleIDs)
}

func TestReflector_SyncIsIdempotent(t *testing.T) {
	guild := newGuild()
	r := newReflector(t, 600, guild)
	ctx := context.Background()

	_, err := r.Sync(ctx, guildID, memberID)
	require.NoError(t, err)

	report, err := r.Sync(ctx, guildID, memberID)
	require.NoError(t, err)
	assert.Empty(t, report.Applied)
	assert.Empty(t, report.Failed)
}

func TestReflector_MissingRoleAndForbiddenAreIsolated(t *testing.T) {
	guild := newGuild()
	guild.nickErr = &rest.Error{Response: &http.Response{StatusCode: http.StatusForbidden}}
	r := newReflector(t, 2500, guild)

	report, err := r.Sync(context.Background(), guildID, memberID)
	require.NoError(t, err)
	assert.Equal(t, honor.Unsynced, report.State())
	assert.ElementsMatch(t, []string{"nickname", "add Veteran"}, report.Failed)

	// Role changes still went through.
	assert.Contains(t, guild.member.RoleIDs, snowflake.ID(10))
	assert.Contains(t, guild.member.RoleIDs, snowflake.ID(11))
	assert.Contains(t, guild.member.RoleIDs, snowflake.ID(21))
	assert.NotContains(t, guild.member.RoleIDs, snowflake.ID(20))
	assert.Nil(t, guild.member.Nick)
}

func TestReflector_EnsureTierRoles(t *testing.T) {
	guild := newGuild()
	r := newReflector(t, 0, guild)
	ctx := context.Background()

	created, err := r.EnsureTierRoles(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, []string{"💀 Outcast", "⚔️ Knight", "🏰 Lord", "🦅 Duke", "👑 King"}, created)

	for _, role := range guild.created {
		for _, tier := range honor.DefaultTiers() {
			if tier.Title() == role.Name {
				assert.Equal(t, tier.Color, role.Color, role.Name)
			}
		}
	}

	created, err = r.EnsureTierRoles(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestReflector_EnsureTierRolesForbidden(t *testing.T) {
	guild := newGuild()
	guild.createErr = &rest.Error{Response: &http.Response{StatusCode: http.StatusForbidden}}
	r := newReflector(t, 0, guild)

	created, err := r.EnsureTierRoles(context.Background(), guildID)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestReflector_SyncCreatesMissingTierRole(t *testing.T) {
	guild := newGuild()
	r := newReflector(t, 6000, guild)

	report, err := r.Sync(context.Background(), guildID, memberID)
	require.NoError(t, err)
	assert.Contains(t, report.Applied, "add ⚔️ Knight")
	assert.NotContains(t, report.Failed, "add ⚔️ Knight")
	require.Len(t, guild.created, 1)
	assert.Equal(t, "⚔️ Knight", guild.created[0].Name)
	assert.Contains(t, guild.member.RoleIDs, guild.created[0].ID)
}

func TestReflector_ReflectRunsInBackground(t *testing.T) {
	guild := newGuild()
	r := newReflector(t, 150, guild)

	r.Reflect(guildID, memberID)
	r.Wait()

	guild.mu.Lock()
	defer guild.mu.Unlock()
	assert.Contains(t, guild.member.RoleIDs, snowflake.ID(10))
}

func TestReflector_NoClient(t *testing.T) {
	r := NewReflector(nil, 0)
	_, err := r.Sync(context.Background(), guildID, memberID)
	assert.Error(t, err)
}

func TestIsForbidden(t *testing.T) {
	assert.True(t, isForbidden(&rest.Error{Response: &http.Response{StatusCode: http.StatusForbidden}}))
	assert.False(t, isForbidden(&rest.Error{Response: &http.Response{StatusCode: http.StatusNotFound}}))
	assert.False(t, isForbidden(context.DeadlineExceeded))
}
