package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "battleship",
		Description: "Play Battleship!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "host",
				Description: "Create a new game",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "join",
				Description: "Join an existing game",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "match_id",
						Description: "The match ID to join",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "list",
				Description: "List available matches",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "solo",
				Description: "Play against the decision core",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "difficulty",
						Description: "Opponent difficulty",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Easy", Value: "easy"},
							{Name: "Normal", Value: "normal"},
							{Name: "Hard", Value: "hard"},
						},
					},
				},
			},
			{
				Name:        "place",
				Description: "Place a ship on your board",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "ship",
						Description: "Hull to place",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Carrier (CV)", Value: "CV"},
							{Name: "Battleship (BB)", Value: "BB"},
							{Name: "Light cruiser (CL)", Value: "CL"},
							{Name: "Submarine (SS)", Value: "SS"},
							{Name: "Destroyer (DD)", Value: "DD"},
						},
					},
					{
						Name:        "x",
						Description: "X coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "y",
						Description: "Y coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "vertical",
						Description: "Place ship vertically?",
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Required:    true,
					},
				},
			},
			{
				Name:        "attack",
				Description: "Attack a coordinate",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "x",
						Description: "X coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "y",
						Description: "Y coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "weapon",
						Description: "Weapon to fire (defaults to main gun)",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Main gun", Value: "AP"},
							{Name: "Air strike", Value: "HE"},
							{Name: "Sonar ping", Value: "SONAR"},
						},
					},
				},
			},
			{
				Name:        "status",
				Description: "View your current game state",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	},
}

func floatPtr(f float64) *float64 {
	return &f
}

// registerCommands registers all slash commands with Discord.
func (b *DiscordBot) registerCommands() error {
	log.Println("Registering slash commands...")

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.appID, "", cmd)
		if err != nil {
			return err
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}
