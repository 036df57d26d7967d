package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/honorguild/honorbot/honorbot"
	"github.com/honorguild/honorbot/honorbot/config"
	"github.com/honorguild/honorbot/honorbot/utils"
	"github.com/honorguild/honorbot/internal/domain/honor"
)

func queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
}

// reflectMember mirrors a fresh balance onto the member. It returns
// immediately; the sync runs in the background.
func reflectMember(b *honorbot.Bot, guildID *snowflake.ID, userID snowflake.ID) {
	if b.Reflector == nil || guildID == nil {
		return
	}
	b.Reflector.Reflect(*guildID, userID)
}

// targetUser resolves the optional "user" option, defaulting to the caller.
func targetUser(e *handler.CommandEvent) discord.User {
	if user, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
		return user
	}
	return e.User()
}

func isAdministrator(e *handler.CommandEvent) bool {
	return hasAdministrator(e.Member())
}

func hasAdministrator(member *discord.ResolvedMember) bool {
	return member != nil && member.Permissions.Has(discord.PermissionAdministrator)
}

// tierChange is empty unless the mutation moved the member across a tier.
func tierChange(res honor.Result) string {
	if !res.TierChanged() {
		return ""
	}
	if res.Balance > res.Previous {
		return fmt.Sprintf("\n🎉 Promoted to **%s**!", res.After.Title())
	}
	return fmt.Sprintf("\n📉 Demoted to **%s**.", res.After.Title())
}

func resultEmbed(title, description string, res honor.Result) discord.Embed {
	return discord.Embed{
		Title: title,
		Description: fmt.Sprintf("%s\n**%s** honor • balance %s%s",
			description, utils.FormatSigned(res.Delta), utils.FormatNumber(res.Balance), tierChange(res)),
		Color: res.After.Color,
	}
}
