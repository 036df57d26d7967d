package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Show the most and least honorable members",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "size",
			Description: "How many members per side",
			Required:    false,
			MinValue:    intPtr(1),
			MaxValue:    intPtr(config.LeaderboardMax),
		},
	},
}

var History = discord.SlashCommandCreate{
	Name:        "history",
	Description: "Show recent honor changes",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose history to show (defaults to you)",
			Required:    false,
		},
	},
}

func intPtr(i int) *int {
	return &i
}

func leaderboardSize(e *handler.CommandEvent) int {
	size, ok := e.SlashCommandInteractionData().OptInt("size")
	if !ok {
		return config.LeaderboardDefault
	}
	return min(max(size, 1), config.LeaderboardMax)
}

func LeaderboardHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := queryContext()
		defer cancel()

		board, err := b.Honor.Leaderboard(ctx, leaderboardSize(e))
		if err != nil {
			return utils.EH.RespondError(e, "leaderboard", err)
		}

		sides := []struct {
			title     string
			standings []honor.Standing
		}{
			{"🏆 Most honorable", board.Top},
			{"💀 Least honorable", board.Flop},
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle(sides[page].title).
					SetDescription(utils.FormatStandings(sides[page].standings)).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, len(sides)), "")
			},
			Pages:      len(sides),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func HistoryHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		user := targetUser(e)

		ctx, cancel := queryContext()
		defer cancel()

		entries, err := b.Honor.History(ctx, user.ID.String(), config.HistoryLimit)
		if err != nil {
			return utils.EH.RespondError(e, "history", err)
		}
		if len(entries) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s has no honor history yet.", utils.Mention(user.ID.String())))
		}

		withActor := isAdministrator(e)
		totalPages := utils.PageCount(len(entries), config.HistoryPerPage)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle(fmt.Sprintf("📜 %s's honor history", user.EffectiveName())).
					SetDescription(historyPage(entries, page, withActor)).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d entries", page+1, totalPages, len(entries)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// historyPage renders one page of entries. Actors are only named for
// administrators.
func historyPage(entries []honor.Entry, page int, withActor bool) string {
	start, end := utils.PageBounds(page, config.HistoryPerPage, len(entries))
	lines := make([]string, 0, end-start)
	for _, entry := range entries[start:end] {
		lines = append(lines, utils.FormatEntry(entry, withActor))
	}
	return strings.Join(lines, "\n")
}
