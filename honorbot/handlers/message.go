package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/logger"
	"github.com/honorguild/honorbot/honorbot/services"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

type ProfanityChecker interface {
	Check(ctx context.Context, text string) services.Verdict
}

type Penalizer interface {
	Penalize(ctx context.Context, userID, word string) (honor.Result, error)
}

type MemberReflector interface {
	Reflect(guildID, userID snowflake.ID)
}

// Notifier tells the channel a member was penalized.
type Notifier func(channelID snowflake.ID, userID snowflake.ID, verdict services.Verdict, res honor.Result) error

// MessageModerator runs the profanity pipeline for one message: check,
// penalize, then reflect and notify outside the ledger critical section.
type MessageModerator struct {
	filter    ProfanityChecker
	penalizer Penalizer
	reflector MemberReflector
	notify    Notifier
}

func NewMessageModerator(filter ProfanityChecker, penalizer Penalizer, reflector MemberReflector, notify Notifier) *MessageModerator {
	return &MessageModerator{filter: filter, penalizer: penalizer, reflector: reflector, notify: notify}
}

// Moderate reports whether the message was penalized. A store failure is
// returned; reflection and notification failures are only logged.
func (m *MessageModerator) Moderate(ctx context.Context, guildID, channelID, userID snowflake.ID, content string) (bool, error) {
	verdict := m.filter.Check(ctx, content)
	if !verdict.Flagged {
		return false, nil
	}

	res, err := m.penalizer.Penalize(ctx, userID.String(), verdict.Word)
	if err != nil {
		return false, fmt.Errorf("failed to penalize %s: %w", userID, err)
	}

	slog.Info("Profanity penalized",
		slog.String("type", "cmd"),
		slog.String("user_id", userID.String()),
		slog.String("source", string(verdict.Source)),
		slog.Int64("balance", res.Balance))

	if m.reflector != nil {
		m.reflector.Reflect(guildID, userID)
	}
	if m.notify != nil {
		if err := m.notify(channelID, userID, verdict, res); err != nil {
			logger.LogError("Failed to send penalty notice", err, slog.String("channel_id", channelID.String()))
		}
	}
	return true, nil
}

// MessageHandler listens for guild messages and feeds human-authored ones
// through the profanity pipeline.
func MessageHandler(b *honorbot.Bot) bot.EventListener {
	if b.Profanity == nil {
		slog.Info("Profanity filter disabled", slog.String("type", "sys"))
		return bot.NewListenerFunc(func(*events.GuildMessageCreate) {})
	}

	m := NewMessageModerator(b.Profanity, b.Honor, b.Reflector, channelNotifier(b))
	return bot.NewListenerFunc(func(e *events.GuildMessageCreate) {
		if e.Message.Author.Bot || e.Message.WebhookID != nil || e.Message.Content == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		if _, err := m.Moderate(ctx, e.GuildID, e.ChannelID, e.Message.Author.ID, e.Message.Content); err != nil {
			logger.LogError("Failed to moderate message", err,
				slog.String("guild_id", e.GuildID.String()),
				slog.String("user_id", e.Message.Author.ID.String()))
		}
	})
}

func channelNotifier(b *honorbot.Bot) Notifier {
	return func(channelID, userID snowflake.ID, verdict services.Verdict, res honor.Result) error {
		description := fmt.Sprintf("%s, that language is not allowed here.", utils.Mention(userID.String()))
		if verdict.Word != "" {
			description = fmt.Sprintf("%s, the word **%s** is not allowed here.", utils.Mention(userID.String()), verdict.Word)
		}
		description += fmt.Sprintf("\n**%s** honor • now %s", utils.FormatSigned(res.Delta), utils.FormatNumber(res.Balance))

		_, err := b.Client.Rest().CreateMessage(channelID, discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🚫 Profanity detected",
				Description: description,
				Color:       config.ErrorColor,
				Footer:      &discord.EmbedFooter{Text: "Please keep it respectful."},
			}},
		})
		return err
	}
}

func guildString(id *snowflake.ID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
