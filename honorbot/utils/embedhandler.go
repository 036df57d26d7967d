package utils

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - bad input, self-targeting
	UserError ErrorType = iota
	// SystemError - store or network failures
	SystemError
	// PermissionError - missing administrator rights
	PermissionError
	// BusinessLogicError - claim windows and cooldowns
	BusinessLogicError
)

func (t ErrorType) String() string {
	switch t {
	case UserError:
		return "user"
	case PermissionError:
		return "permission"
	case BusinessLogicError:
		return "business"
	default:
		return "system"
	}
}

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	default:
		return config.ErrorColor
	}
}

// Classify maps domain errors onto a response category. Anything unknown is
// a system error.
func Classify(err error) ErrorType {
	switch {
	case errors.Is(err, honor.ErrSelfTarget):
		return UserError
	case errors.Is(err, honor.ErrNotAdministrator):
		return PermissionError
	case honor.IsClaimRejection(err):
		return BusinessLogicError
	default:
		return SystemError
	}
}

// UserMessage is the text shown for err. System errors never leak details.
func UserMessage(err error) string {
	switch Classify(err) {
	case UserError:
		return "You can't do that to yourself."
	case PermissionError:
		return "You need the Administrator permission to do that."
	case BusinessLogicError:
		return "You've already claimed that. Try again later."
	default:
		return "Something went wrong on our side. Please try again later."
	}
}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

// CreateEphemeralError creates an ephemeral error message for component events
func (h *ResponseHandler) CreateEphemeralError(event *handler.ComponentEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// CreateClassifiedError creates an error response with a category prefix and color
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
	})
}

// CreateClassifiedComponentError creates an ephemeral error for component interactions
func (h *ResponseHandler) CreateClassifiedComponentError(event *handler.ComponentEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: getErrorPrefix(errorType) + " " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// RespondError classifies err, logs system failures with full context and
// answers the interaction with a category-appropriate message.
func (h *ResponseHandler) RespondError(event interface{}, action string, err error) error {
	errorType := Classify(err)
	if errorType == SystemError {
		slog.Error("Command action failed",
			slog.String("type", "error"),
			slog.String("action", action),
			slog.Any("error", err))
	}
	message := UserMessage(err)

	switch e := event.(type) {
	case *handler.CommandEvent:
		return h.CreateClassifiedError(e, errorType, message)
	case *handler.ComponentEvent:
		return h.CreateClassifiedComponentError(e, errorType, message)
	default:
		return fmt.Errorf("unsupported event type for error handling")
	}
}
