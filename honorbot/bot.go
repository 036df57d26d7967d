package honorbot

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/database"
	"github.com/honorguild/honorbot/honorbot/database/repositories"
	"github.com/honorguild/honorbot/honorbot/services"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg             Config
	Client          bot.Client
	Paginator       *paginator.Manager
	Version         string
	Commit          string
	DB              *database.DB
	HonorRepository repositories.HonorRepository
	Honor           *honor.Service
	Profanity       *services.ProfanityFilter
	Reflector       *services.Reflector
	Archive         *services.Archive
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagRoles)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	if b.Reflector != nil {
		b.Reflector.SetClient(services.NewMemberClient(client.Rest()))
	}
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("HonorBot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), config.PresenceTimeout)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity(b.Cfg.Bot.Activity),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

func (b *Bot) OnGuildReady(e *events.GuildReady) {
	b.ensureTierRoles(e.GuildID)
}

func (b *Bot) OnGuildJoin(e *events.GuildJoin) {
	b.ensureTierRoles(e.GuildID)
}

func (b *Bot) ensureTierRoles(guildID snowflake.ID) {
	if b.Reflector == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ReflectTimeout)
	defer cancel()

	if _, err := b.Reflector.EnsureTierRoles(ctx, guildID); err != nil {
		slog.Error("Failed to ensure tier roles",
			slog.String("type", "sys"),
			slog.String("guild_id", guildID.String()),
			slog.Any("error", err))
	}
}
