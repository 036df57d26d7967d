package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/logger"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

var FixRoles = discord.SlashCommandCreate{
	Name:        "fixroles",
	Description: "Resync your tier roles and nickname with your honor",
}

var pollNumbers = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

var Poll = discord.SlashCommandCreate{
	Name:        "poll",
	Description: "Start a poll with up to five options",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "question",
			Description: "What to ask",
			Required:    true,
			MaxLength:   intPtr(200),
		},
		pollOption(1, true),
		pollOption(2, true),
		pollOption(3, false),
		pollOption(4, false),
		pollOption(5, false),
	},
}

func pollOption(n int, required bool) discord.ApplicationCommandOptionString {
	return discord.ApplicationCommandOptionString{
		Name:        fmt.Sprintf("option%d", n),
		Description: fmt.Sprintf("Option %d", n),
		Required:    required,
		MaxLength:   intPtr(100),
	}
}

const (
	reportWordMax = 40
	customIDMax   = 100
)

var Report = discord.SlashCommandCreate{
	Name:        "report",
	Description: "Suggest a word for the profanity list",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "word",
			Description: "Word or phrase to flag",
			Required:    true,
			MaxLength:   intPtr(reportWordMax),
		},
	},
}

func FixRolesHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil || b.Reflector == nil {
			return utils.EH.CreateInfoEmbed(e, "Roles can only be synced inside a server.")
		}
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.ReflectTimeout)
		defer cancel()

		report, err := b.Reflector.Sync(ctx, *guildID, e.User().ID)
		if err != nil {
			logger.LogError("Failed to resync member", err,
				slog.String("user_id", e.User().ID.String()))
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "❌ Couldn't read your honor right now. Try again in a moment.",
					Color:       config.ErrorColor,
				}},
			})
			return err
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{syncEmbed(report)},
		})
		return err
	}
}

func syncEmbed(report honor.SyncReport) discord.Embed {
	if len(report.Applied) == 0 && len(report.Failed) == 0 {
		return discord.Embed{
			Title:       "🔄 Roles checked",
			Description: "Everything already matches your honor.",
			Color:       config.SuccessColor,
		}
	}

	embed := discord.Embed{Title: "🔄 Roles resynced", Color: config.SuccessColor}
	if len(report.Applied) > 0 {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Applied",
			Value: strings.Join(report.Applied, "\n"),
		})
	}
	if report.State() == honor.Unsynced {
		embed.Color = config.ErrorColor
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:  "Failed",
			Value: strings.Join(report.Failed, "\n"),
		})
	}
	return embed
}

// pollChoices trims the options and drops blank ones, keeping their order.
func pollChoices(options ...string) []string {
	choices := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			choices = append(choices, o)
		}
	}
	if len(choices) > len(pollNumbers) {
		choices = choices[:len(pollNumbers)]
	}
	return choices
}

func pollEmbed(author, question string, choices []string) discord.Embed {
	var sb strings.Builder
	for i, c := range choices {
		fmt.Fprintf(&sb, "%s %s\n", pollNumbers[i], c)
	}
	return discord.Embed{
		Title:       "📊 " + question,
		Description: strings.TrimSuffix(sb.String(), "\n"),
		Color:       config.InfoColor,
		Footer:      &discord.EmbedFooter{Text: "Poll by " + author},
	}
}

func PollHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		options := make([]string, len(pollNumbers))
		for i := range options {
			options[i] = data.String(fmt.Sprintf("option%d", i+1))
		}
		choices := pollChoices(options...)
		if len(choices) < 2 {
			return utils.EH.CreateErrorEmbed(e, "A poll needs at least two options.")
		}

		if err := e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{pollEmbed(e.User().EffectiveName(), data.String("question"), choices)},
		}); err != nil {
			return err
		}

		msg, err := e.GetInteractionResponse()
		if err != nil {
			return err
		}
		for _, emoji := range pollNumbers[:len(choices)] {
			if err := b.Client.Rest().AddReaction(msg.ChannelID, msg.ID, emoji); err != nil {
				logger.LogError("Failed to add poll reaction", err,
					slog.String("message_id", msg.ID.String()))
				break
			}
		}
		return nil
	}
}

func reportCustomID(action string, reporter snowflake.ID, word string) string {
	return fmt.Sprintf("/report/%s/%s/%s", action, reporter, url.PathEscape(word))
}

func reportedWord(vars map[string]string) (string, error) {
	word, err := url.PathUnescape(vars["word"])
	if err != nil {
		return "", err
	}
	if word = strings.TrimSpace(word); word == "" {
		return "", fmt.Errorf("empty reported word")
	}
	return word, nil
}

func ReportHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if b.Profanity == nil {
			return utils.EH.CreateInfoEmbed(e, "The profanity filter is disabled.")
		}
		word := strings.TrimSpace(e.SlashCommandInteractionData().String("word"))
		if word == "" {
			return utils.EH.CreateErrorEmbed(e, "Tell me which word to report.")
		}
		if len(reportCustomID("cancel", e.User().ID, word)) > customIDMax {
			return utils.EH.CreateErrorEmbed(e, "That word is too long to report.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🚩 Word reported",
				Description: fmt.Sprintf("%s suggests adding ||%s|| to the profanity list. An administrator can add it.",
					utils.Mention(e.User().ID.String()), word),
				Color: config.InfoColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewDangerButton("Add", reportCustomID("add", e.User().ID, word)),
					discord.NewSecondaryButton("Cancel", reportCustomID("cancel", e.User().ID, word)),
				),
			},
		})
	}
}

func ReportAddHandler(b *honorbot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if !hasAdministrator(e.Member()) {
			return utils.EH.CreateEphemeralError(e, "Only administrators can add words.")
		}
		if b.Profanity == nil {
			return utils.EH.CreateEphemeralError(e, "The profanity filter is disabled.")
		}
		word, err := reportedWord(e.Vars)
		if err != nil {
			return err
		}

		ctx, cancel := queryContext()
		defer cancel()

		added, err := b.Profanity.Add(ctx, word, e.User().ID.String())
		if err != nil {
			return utils.EH.RespondError(e, "report_add", err)
		}
		status := fmt.Sprintf("✅ %s added ||%s|| to the list.", utils.Mention(e.User().ID.String()), word)
		if !added {
			status = fmt.Sprintf("ℹ️ ||%s|| was already on the list.", word)
		}
		return closeReport(e, status)
	}
}

func ReportCancelHandler() handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		reporter, err := snowflake.Parse(e.Vars["reporter"])
		if err != nil {
			return err
		}
		if e.User().ID != reporter && !hasAdministrator(e.Member()) {
			return utils.EH.CreateEphemeralError(e, "Only the reporter or an administrator can cancel.")
		}
		return closeReport(e, fmt.Sprintf("Report cancelled by %s.", utils.Mention(e.User().ID.String())))
	}
}

func closeReport(e *handler.ComponentEvent, status string) error {
	return e.UpdateMessage(discord.MessageUpdate{
		Content:    &status,
		Components: &[]discord.ContainerComponent{},
	})
}
