package buildinfo

const (
	ProjectName     = "rps"
	GithubURL       = "https://github.com/bloops-games/rps"
	BotFatherURL    = "https://t.me/botfather"
	GreetingCLI     = "%s %s\n%s\n\n"
	TelegramBotName = "@rpstrainerbot"
)

const Graffiti = `
 ____  ____  ____
|  _ \|  _ \/ ___|
| |_) | |_) \___ \
|  _ <|  __/ ___) |
|_| \_\_|   |____/
`
