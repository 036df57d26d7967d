package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Honor,
	Thanks,
	Bless,
	Helped,
	Daily,
	Lootbox,
	Leaderboard,
	History,
	Achievements,
	HonorAdjust,
	BadWord,
	FixRoles,
	Poll,
	Report,
}
