package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/puzpuzpuz/xsync/v3"
)

var Thanks = discord.SlashCommandCreate{
	Name:        "thanks",
	Description: "Thank someone and give them honor",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who to thank",
			Required:    true,
		},
	},
}

var Bless = discord.SlashCommandCreate{
	Name:        "bless",
	Description: "Bless someone with a larger honor gift",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who to bless",
			Required:    true,
		},
	},
}

var Helped = discord.SlashCommandCreate{
	Name:        "helped",
	Description: "Ask someone you helped to confirm it",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "The member you helped",
			Required:    true,
		},
	},
}

type socialAward func(ctx context.Context, actorID, targetID string) (honor.Result, error)

func ThanksHandler(b *honorbot.Bot) handler.CommandHandler {
	return socialHandler(b, "🙏 Thanks given", "thanked", b.Honor.Thank)
}

func BlessHandler(b *honorbot.Bot) handler.CommandHandler {
	return socialHandler(b, "✨ Blessing bestowed", "blessed", b.Honor.Bless)
}

func socialHandler(b *honorbot.Bot, title, verb string, award socialAward) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.SlashCommandInteractionData().User("user")
		if target.Bot {
			return utils.EH.CreateInfoEmbed(e, "Bots don't collect honor.")
		}

		ctx, cancel := queryContext()
		defer cancel()

		res, err := award(ctx, e.User().ID.String(), target.ID.String())
		if err != nil {
			return utils.EH.RespondError(e, verb, err)
		}
		reflectMember(b, e.GuildID(), target.ID)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{resultEmbed(title,
				fmt.Sprintf("%s %s %s.", utils.Mention(e.User().ID.String()), verb, utils.Mention(target.ID.String())), res)},
		})
	}
}

func helpCustomID(helper, helped snowflake.ID) string {
	return fmt.Sprintf("/helped/%s/%s", helper, helped)
}

func HelpedHandler(b *honorbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		helped := e.SlashCommandInteractionData().User("user")
		if helped.Bot {
			return utils.EH.CreateInfoEmbed(e, "Bots can't confirm help.")
		}
		if helped.ID == e.User().ID {
			return utils.EH.RespondError(e, "helped", honor.ErrSelfTarget)
		}

		return e.CreateMessage(discord.MessageCreate{
			Content: utils.Mention(helped.ID.String()),
			Embeds: []discord.Embed{{
				Title: "🤝 Help confirmation",
				Description: fmt.Sprintf("%s says they helped you. Press the button to confirm and award **%s** honor.",
					utils.Mention(e.User().ID.String()), utils.FormatSigned(b.Honor.Awards().HelpConfirmed)),
				Color: config.InfoColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSuccessButton("Confirm", helpCustomID(e.User().ID, helped.ID)),
				),
			},
		})
	}
}

// confirmations remembers pressed buttons so a double click credits once.
var confirmations = xsync.NewMapOf[snowflake.ID, struct{}]()

func HelpConfirmHandler(b *honorbot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		helper, err := snowflake.Parse(e.Vars["helper"])
		if err != nil {
			return err
		}
		helped, err := snowflake.Parse(e.Vars["helped"])
		if err != nil {
			return err
		}

		if e.User().ID != helped {
			return utils.EH.CreateEphemeralError(e, "Only the member who was helped can confirm.")
		}
		if time.Since(e.Message.ID.Time()) > config.HelpConfirmTimeout {
			return utils.EH.CreateEphemeralError(e, "This confirmation has expired.")
		}
		if _, pressed := confirmations.LoadOrStore(e.Message.ID, struct{}{}); pressed {
			return utils.EH.CreateEphemeralError(e, "Already confirmed.")
		}

		ctx, cancel := queryContext()
		defer cancel()

		res, err := b.Honor.ConfirmHelp(ctx, helped.String(), helper.String())
		if err != nil {
			confirmations.Delete(e.Message.ID)
			return utils.EH.RespondError(e, "confirm_help", err)
		}
		reflectMember(b, e.GuildID(), helper)

		return e.UpdateMessage(discord.MessageUpdate{
			Embeds: &[]discord.Embed{resultEmbed("🤝 Help confirmed",
				fmt.Sprintf("%s confirmed %s's help.", utils.Mention(helped.String()), utils.Mention(helper.String())), res)},
			Components: &[]discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSuccessButton("Confirmed", helpCustomID(helper, helped)).WithDisabled(true),
				),
			},
		})
	}
}
