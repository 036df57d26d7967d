package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

// MemberClient is the slice of the Discord REST API the reflector drives.
type MemberClient interface {
	Member(ctx context.Context, guildID, userID snowflake.ID) (*discord.Member, error)
	GuildRoles(ctx context.Context, guildID snowflake.ID) ([]discord.Role, error)
	SetNickname(ctx context.Context, guildID, userID snowflake.ID, nick string) error
	AddRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	RemoveRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	CreateRole(ctx context.Context, guildID snowflake.ID, name string, color int) (*discord.Role, error)
}

type restMemberClient struct {
	rest rest.Rest
}

func NewMemberClient(r rest.Rest) MemberClient {
	return &restMemberClient{rest: r}
}

func (c *restMemberClient) Member(ctx context.Context, guildID, userID snowflake.ID) (*discord.Member, error) {
	return c.rest.GetMember(guildID, userID, rest.WithCtx(ctx))
}

func (c *restMemberClient) GuildRoles(ctx context.Context, guildID snowflake.ID) ([]discord.Role, error) {
	return c.rest.GetRoles(guildID, rest.WithCtx(ctx))
}

func (c *restMemberClient) SetNickname(ctx context.Context, guildID, userID snowflake.ID, nick string) error {
	_, err := c.rest.UpdateMember(guildID, userID, discord.MemberUpdate{Nick: &nick}, rest.WithCtx(ctx))
	return err
}

func (c *restMemberClient) AddRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	return c.rest.AddMemberRole(guildID, userID, roleID, rest.WithCtx(ctx))
}

func (c *restMemberClient) RemoveRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	return c.rest.RemoveMemberRole(guildID, userID, roleID, rest.WithCtx(ctx))
}

func (c *restMemberClient) CreateRole(ctx context.Context, guildID snowflake.ID, name string, color int) (*discord.Role, error) {
	return c.rest.CreateRole(guildID, discord.RoleCreate{
		Name:        name,
		Color:       color,
		Mentionable: true,
	}, rest.WithCtx(ctx))
}

// Reflector mirrors a member's balance onto their Discord roles and nickname.
// It never writes to the ledger.
type Reflector struct {
	honor   *honor.Service
	timeout time.Duration

	mu     sync.RWMutex
	client MemberClient
	wg     sync.WaitGroup
}

func NewReflector(svc *honor.Service, timeout time.Duration) *Reflector {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Reflector{honor: svc, timeout: timeout}
}

// SetClient is called once the Discord client exists.
func (r *Reflector) SetClient(c MemberClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = c
}

// Reflect syncs the member in the background. Failures are logged.
func (r *Reflector) Reflect(guildID, userID snowflake.ID) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		report, err := r.Sync(ctx, guildID, userID)
		if err != nil {
			slog.Error("Failed to reflect member",
				slog.String("type", "component"),
				slog.String("guild_id", guildID.String()),
				slog.String("user_id", userID.String()),
				slog.Any("error", err))
			return
		}
		if report.State() == honor.Unsynced {
			slog.Warn("Member partially reflected",
				slog.String("type", "component"),
				slog.String("user_id", userID.String()),
				slog.Any("failed", report.Failed))
		}
	}()
}

// Wait blocks until in-flight reflections finish.
func (r *Reflector) Wait() {
	r.wg.Wait()
}

func (r *Reflector) memberClient() (MemberClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.client == nil {
		return nil, errors.New("reflector has no discord client")
	}
	return r.client, nil
}

// EnsureTierRoles creates every tier title role the guild lacks, colored like
// the tier, and returns the names it created. Roles it cannot create are
// logged and skipped.
func (r *Reflector) EnsureTierRoles(ctx context.Context, guildID snowflake.ID) ([]string, error) {
	client, err := r.memberClient()
	if err != nil {
		return nil, err
	}
	guildRoles, err := client.GuildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(guildRoles))
	for _, role := range guildRoles {
		existing[role.Name] = true
	}

	var created []string
	for _, tier := range r.honor.Ranks().Tiers() {
		title := tier.Title()
		if existing[title] {
			continue
		}
		if _, err := client.CreateRole(ctx, guildID, title, tier.Color); err != nil {
			logRoleFailure("create "+title, guildID, err)
			continue
		}
		existing[title] = true
		created = append(created, title)
	}

	if len(created) > 0 {
		slog.Info("Tier roles created",
			slog.String("type", "component"),
			slog.String("guild_id", guildID.String()),
			slog.Any("roles", created))
	}
	return created, nil
}

// Sync computes the diff for one member and applies every sub-operation
// independently. Missing tier roles are created on the way. The returned
// error is only for failures that prevent computing the diff at all.
func (r *Reflector) Sync(ctx context.Context, guildID, userID snowflake.ID) (honor.SyncReport, error) {
	client, err := r.memberClient()
	if err != nil {
		return honor.SyncReport{}, err
	}

	balance, err := r.honor.Balance(ctx, userID.String())
	if err != nil {
		return honor.SyncReport{}, err
	}
	member, err := client.Member(ctx, guildID, userID)
	if err != nil {
		return honor.SyncReport{}, err
	}
	guildRoles, err := client.GuildRoles(ctx, guildID)
	if err != nil {
		return honor.SyncReport{}, err
	}

	byID := make(map[snowflake.ID]string, len(guildRoles))
	byName := make(map[string]snowflake.ID, len(guildRoles))
	for _, role := range guildRoles {
		byID[role.ID] = role.Name
		if _, dup := byName[role.Name]; !dup {
			byName[role.Name] = role.ID
		}
	}

	state := honor.MemberState{Balance: balance, DisplayName: member.User.EffectiveName()}
	if member.Nick != nil {
		state.Nickname = *member.Nick
	}
	held := make(map[string]snowflake.ID, len(member.RoleIDs))
	for _, id := range member.RoleIDs {
		if name, ok := byID[id]; ok {
			state.Roles = append(state.Roles, name)
			held[name] = id
		}
	}

	diff := r.honor.Reconcile(state)
	var report honor.SyncReport
	record := func(op string, err error) {
		if err == nil {
			report.Applied = append(report.Applied, op)
			return
		}
		report.Failed = append(report.Failed, op)
		logSyncFailure(op, userID, err)
	}

	if diff.Nickname != nil {
		record("nickname", client.SetNickname(ctx, guildID, userID, *diff.Nickname))
	}
	tierColors := make(map[string]int)
	for _, tier := range r.honor.Ranks().Tiers() {
		tierColors[tier.Title()] = tier.Color
	}

	for _, name := range diff.Add {
		roleID, ok := byName[name]
		if color, isTier := tierColors[name]; !ok && isTier {
			role, err := client.CreateRole(ctx, guildID, name, color)
			if err != nil {
				report.Failed = append(report.Failed, "add "+name)
				logRoleFailure("create "+name, guildID, err)
				continue
			}
			roleID, ok = role.ID, true
			byName[name] = role.ID
		}
		if !ok {
			report.Failed = append(report.Failed, "add "+name)
			slog.Warn("Reward role missing from guild",
				slog.String("type", "component"),
				slog.String("guild_id", guildID.String()),
				slog.String("role", name))
			continue
		}
		record("add "+name, client.AddRole(ctx, guildID, userID, roleID))
	}
	for _, name := range diff.Remove {
		record("remove "+name, client.RemoveRole(ctx, guildID, userID, held[name]))
	}
	return report, nil
}

func logSyncFailure(op string, userID snowflake.ID, err error) {
	attrs := []any{
		slog.String("type", "component"),
		slog.String("operation", op),
		slog.String("user_id", userID.String()),
		slog.Any("error", err),
	}
	if isForbidden(err) {
		slog.Warn("Missing permission to update member", attrs...)
		return
	}
	slog.Error("Failed to update member", attrs...)
}

func logRoleFailure(op string, guildID snowflake.ID, err error) {
	attrs := []any{
		slog.String("type", "component"),
		slog.String("operation", op),
		slog.String("guild_id", guildID.String()),
		slog.Any("error", err),
	}
	if isForbidden(err) {
		slog.Warn("Missing permission to manage roles", attrs...)
		return
	}
	slog.Error("Failed to manage roles", attrs...)
}

func isForbidden(err error) bool {
	var restErr *rest.Error
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}
