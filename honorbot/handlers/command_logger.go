package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/logger"
)

const slowThreshold = 2 * time.Second

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return observe("cmd", "Command", name, e.User(), guildString(e.GuildID()), func() error {
			return h(e)
		})
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return observe("component", "Component interaction", name, e.User(), guildString(e.GuildID()), func() error {
			return h(e)
		})
	}
}

// WrapAutocompleteWithLogging only records failures and timing; autocomplete
// fires on every keystroke.
func WrapAutocompleteWithLogging(name string, h handler.AutocompleteHandler) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		start := time.Now()
		err := h(e)
		if err != nil {
			logger.LogCommand(name+" autocomplete", time.Since(start), err)
		}
		return err
	}
}

func observe(kind, label, name string, user discord.User, guildID string, run func() error) error {
	start := time.Now()

	slog.Info(label+" started",
		slog.String("type", kind),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
		slog.String("guild_id", guildID),
	)

	done := make(chan error, 1)
	go func() {
		done <- run()
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		attrs := []any{
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.Duration("took", duration),
		}

		switch {
		case err != nil:
			slog.Error(label+" failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case duration > slowThreshold:
			slog.Warn(label+" executed slowly", append(attrs,
				slog.String("status", "slow"),
			)...)
		default:
			slog.Info(label+" completed", append(attrs,
				slog.String("status", "success"),
			)...)
		}
		return err

	case <-time.After(config.CommandExecutionTimeout):
		slog.Error(label+" timed out",
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.String("status", "timeout"),
			slog.Duration("timeout", config.CommandExecutionTimeout),
		)
		return fmt.Errorf("%s timed out after %s", name, config.CommandExecutionTimeout)
	}
}
