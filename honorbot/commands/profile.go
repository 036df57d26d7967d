package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

var Honor = discord.SlashCommandCreate{
	Name:        "honor",
	Description: "Show an honor profile",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose profile to show (defaults to you)",
			Required:    false,
		},
	},
}

var Achievements = discord.SlashCommandCreate{
	Name:        "achievements",
	Description: "List achievements and which are unlocked",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose achievements to show (defaults to you)",
			Required:    false,
		},
	},
}

func HonorHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		user := targetUser(e)

		ctx, cancel := queryContext()
		defer cancel()

		profile, err := b.Honor.Profile(ctx, user.ID.String())
		if err != nil {
			return utils.EH.RespondError(e, "profile", err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{profileEmbed(user, profile, isAdministrator(e))},
		})
	}
}

func profileEmbed(user discord.User, p honor.Profile, withActor bool) discord.Embed {
	badges := "*None yet*"
	if len(p.Achievements) > 0 {
		symbols := make([]string, 0, len(p.Achievements))
		for _, a := range p.Achievements {
			symbols = append(symbols, a.Symbol)
		}
		badges = strings.Join(symbols, " ")
	}

	recent := "*No activity*"
	if len(p.Recent) > 0 {
		lines := make([]string, 0, len(p.Recent))
		for _, entry := range p.Recent {
			lines = append(lines, utils.FormatEntry(entry, withActor))
		}
		recent = strings.Join(lines, "\n")
	}

	return discord.Embed{
		Title:       fmt.Sprintf("%s %s", p.Tier.Symbol, user.EffectiveName()),
		Description: fmt.Sprintf("**%s** honor\n%s", utils.FormatNumber(p.Balance), utils.FormatProgress(p.Progress, config.ProgressBarWidth)),
		Color:       p.Tier.Color,
		Thumbnail:   &discord.EmbedResource{URL: user.EffectiveAvatarURL()},
		Fields: []discord.EmbedField{
			{Name: "Achievements", Value: badges},
			{Name: "Recent", Value: recent},
			{Name: "Daily", Value: availability(p.CanDaily), Inline: boolPtr(true)},
			{Name: "Lootbox", Value: availability(p.CanLootbox), Inline: boolPtr(true)},
		},
	}
}

func availability(ok bool) string {
	if ok {
		return "✅ Ready"
	}
	return "⏳ Claimed"
}

func boolPtr(b bool) *bool {
	return &b
}

func AchievementsHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		user := targetUser(e)

		ctx, cancel := queryContext()
		defer cancel()

		unlocked, err := b.Honor.Achievements(ctx, user.ID.String())
		if err != nil {
			return utils.EH.RespondError(e, "achievements", err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🏅 %s's achievements", user.EffectiveName()),
				Description: formatCatalogue(b.Honor.Catalogue(), unlocked),
				Color:       config.EmbedDefaultColor,
				Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("%d/%d unlocked", len(unlocked), len(b.Honor.Catalogue()))},
			}},
		})
	}
}

func formatCatalogue(catalogue, unlocked []honor.Achievement) string {
	have := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		have[a.Key] = true
	}

	var sb strings.Builder
	for _, a := range catalogue {
		mark := "🔒"
		if have[a.Key] {
			mark = a.Symbol
		}
		fmt.Fprintf(&sb, "%s **%s** • %s\n", mark, a.Key, a.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}
