package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

var HonorAdjust = discord.SlashCommandCreate{
	Name:        "honor-adjust",
	Description: "Add or remove honor (administrators only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Member to adjust",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Signed amount of honor",
			Required:    true,
			MinValue:    intPtr(int(honor.MinHonor) * 2),
			MaxValue:    intPtr(int(honor.MaxHonor) * 2),
		},
		discord.ApplicationCommandOptionString{
			Name:        "note",
			Description: "Recorded with the ledger entry",
			Required:    false,
			MaxLength:   intPtr(200),
		},
	},
}

var BadWord = discord.SlashCommandCreate{
	Name:        "badword",
	Description: "Manage the profanity word list (administrators only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Add a word or phrase",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "word",
					Description: "Word or phrase to flag",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a word or phrase",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:         "word",
					Description:  "Word or phrase to unflag",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	},
}

func HonorAdjustHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))
		note := data.String("note")

		ctx, cancel := queryContext()
		defer cancel()

		res, err := b.Honor.Adjust(ctx, e.User().ID.String(), target.ID.String(), amount, note, isAdministrator(e))
		if err != nil {
			return utils.EH.RespondError(e, "honor_adjust", err)
		}
		reflectMember(b, e.GuildID(), target.ID)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{resultEmbed("⚖️ Honor adjusted",
				fmt.Sprintf("%s adjusted %s's honor.", utils.Mention(e.User().ID.String()), utils.Mention(target.ID.String())), res)},
		})
	}
}

func BadWordAddHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdministrator(e) {
			return utils.EH.RespondError(e, "badword_add", honor.ErrNotAdministrator)
		}
		if b.Profanity == nil {
			return utils.EH.CreateInfoEmbed(e, "The profanity filter is disabled.")
		}
		word := e.SlashCommandInteractionData().String("word")

		ctx, cancel := queryContext()
		defer cancel()

		added, err := b.Profanity.Add(ctx, word, e.User().ID.String())
		if err != nil {
			return utils.EH.RespondError(e, "badword_add", err)
		}
		if !added {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("**%s** is already on the list.", word))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Added **%s** to the list.", word))
	}
}

func BadWordRemoveHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdministrator(e) {
			return utils.EH.RespondError(e, "badword_remove", honor.ErrNotAdministrator)
		}
		if b.Profanity == nil {
			return utils.EH.CreateInfoEmbed(e, "The profanity filter is disabled.")
		}
		word := e.SlashCommandInteractionData().String("word")

		ctx, cancel := queryContext()
		defer cancel()

		removed, err := b.Profanity.Remove(ctx, word)
		if err != nil {
			return utils.EH.RespondError(e, "badword_remove", err)
		}
		if !removed {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("**%s** is not on the list.", word))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Removed **%s** from the list.", word))
	}
}

func BadWordAutocomplete(b *honorbot.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		if b.Profanity == nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		ctx, cancel := queryContext()
		defer cancel()

		words := b.Profanity.Suggest(ctx, e.Data.String("word"), config.AutocompleteLimit)
		choices := make([]discord.AutocompleteChoice, 0, len(words))
		for _, w := range words {
			choices = append(choices, discord.AutocompleteChoiceString{Name: w, Value: w})
		}
		return e.AutocompleteResult(choices)
	}
}
