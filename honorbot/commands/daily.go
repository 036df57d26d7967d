package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "Claim your daily honor bonus",
}

var Lootbox = discord.SlashCommandCreate{
	Name:        "lootbox",
	Description: "Open a lootbox once every 24 hours",
}

func DailyHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := queryContext()
		defer cancel()

		res, err := b.Honor.ClaimDaily(ctx, e.User().ID.String())
		if honor.IsClaimRejection(err) {
			return utils.EH.CreateInfoEmbed(e, "You've already claimed today's bonus. Come back tomorrow!")
		}
		if err != nil {
			return utils.EH.RespondError(e, "daily", err)
		}
		reflectMember(b, e.GuildID(), e.User().ID)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{resultEmbed("📅 Daily bonus claimed", "See you tomorrow.", res)},
		})
	}
}

func LootboxHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := queryContext()
		defer cancel()

		res, err := b.Honor.OpenLootbox(ctx, e.User().ID.String())
		if honor.IsClaimRejection(err) {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("Your next lootbox unlocks %s after the last one.", honor.LootboxCooldown))
		}
		if err != nil {
			return utils.EH.RespondError(e, "lootbox", err)
		}
		reflectMember(b, e.GuildID(), e.User().ID)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{resultEmbed("🎁 Lootbox opened",
				fmt.Sprintf("You found **%s** honor!", utils.FormatNumber(res.Reward)), res.Result)},
		})
	}
}
