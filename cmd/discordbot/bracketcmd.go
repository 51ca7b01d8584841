/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/feed"
	"github.com/mikeb26/bracketview/internal"
	"github.com/mikeb26/bracketview/render"
	"github.com/mikeb26/bracketview/view"
)

type BracketSubCommand string

const (
	BracketAboutCmd BracketSubCommand = "about"
	BracketHelpCmd  BracketSubCommand = "help"
	BracketShowCmd  BracketSubCommand = "show"
	BracketImageCmd BracketSubCommand = "image"
)

var bracketSubCmdHdlrs = map[BracketSubCommand]CmdHandler{
	BracketAboutCmd: bracketAboutCmdHandler,
	BracketHelpCmd:  bracketHelpCmdHandler,
	BracketShowCmd:  bracketShowCmdHandler,
	BracketImageCmd: bracketImageCmdHandler,
}

// Discord drops interactions not answered within 3 seconds.
const loadDeadline = 2500 * time.Millisecond

// publisher uploads a rendered image and returns its public URL.
type publisher interface {
	Publish(ctx context.Context, name string, contentType string,
		body io.Reader) (string, error)
}

var (
	bracketCfg     = internal.DefaultConfig()
	sourceKind     = view.SourceFeed
	imagePublisher publisher
	// built once in setup so the cached HTTP client is shared by every
	// interaction
	bracketSource bracket.Source
)

func bracketCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
	var stageChoices []*discordgo.ApplicationCommandOptionChoice
	for _, tag := range bracket.DefaultStageOrder().Tags() {
		stageChoices = append(stageChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  tag.Label(),
			Value: string(tag),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        string(BracketCmd),
		Description: "Knockout bracket; try /bracket help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(BracketHelpCmd),
				Description: "Show usage for bracket",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(BracketAboutCmd),
				Description: "Show information about bracketview",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(BracketShowCmd),
				Description: "Show the bracket as text",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "stage",
						Description: "Only show one stage",
						Required:    false,
						Choices:     stageChoices,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(BracketImageCmd),
				Description: "Show the bracket as an image",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt},
			},
		},
	}
}

func bracketCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := bracketHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := bracketSubCmdHdlrs[BracketSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed about.txt
var aboutText string

func bracketAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func bracketHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

// subOptions returns the options passed to the invoked sub-command.
func subOptions(inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			opts[opt.Name] = opt
		}
	}
	return opts
}

// loadBracket runs the pipeline once within the interaction deadline. A
// non-empty msg is the user-facing reason the bracket is not available.
func loadBracket(ctx context.Context) (m *view.Model, msg string) {
	ctx, cancel := context.WithTimeout(ctx, loadDeadline)
	defer cancel()

	src := bracketSource
	if src == nil {
		return nil, "The bracket source is not configured."
	}
	m = view.NewModel(view.Dimensions(bracketCfg), view.ModeFor(src))
	state, err := m.Run(ctx, src)
	switch {
	case errors.Is(err, feed.ErrNoData):
		return nil, "No knockout matches posted yet; check back soon."
	case errors.Is(err, context.DeadlineExceeded):
		return nil, "The match feed is slow to respond; please try again shortly."
	case state != view.Ready:
		return nil, fmt.Sprintf("Error fetching bracket: %v", err)
	}

	return m, ""
}

func bracketShowCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)

	m, msg := loadBracket(ctx)
	if m == nil {
		resp.Data.Content = msg
		log.Printf("discordbot.show: %v", resp.Data.Content)
		return resp
	}

	textOpts := render.TextOptions{}
	if opt, ok := opts["stage"]; ok {
		textOpts.Stage = bracket.ParseStageTag(opt.StringValue())
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(render.Text(m.Tournament(), textOpts)))

	if opt, ok := opts["broadcast"]; ok && opt.BoolValue() {
		resp.Data.Flags = 0
	}

	return resp
}

func bracketImageCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subOptions(inter)

	if imagePublisher == nil {
		resp.Data.Content = "Bracket images are not available right now."
		log.Printf("discordbot.image: no publisher configured")
		return resp
	}
	m, msg := loadBracket(ctx)
	if m == nil {
		resp.Data.Content = msg
		log.Printf("discordbot.image: %v", resp.Data.Content)
		return resp
	}

	var buf bytes.Buffer
	err := render.PNG(&buf, m.Tournament(), m.Layout(), m.Connectors(),
		render.DefaultTheme())
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error rendering bracket: %v", err)
		log.Printf("discordbot.image: %v", resp.Data.Content)
		return resp
	}

	// identical renders share one object
	sum := sha256.Sum256(buf.Bytes())
	name := fmt.Sprintf("discord/%v.png", hex.EncodeToString(sum[:8]))
	url, err := imagePublisher.Publish(ctx, name, "image/png",
		bytes.NewReader(buf.Bytes()))
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error publishing bracket image: %v", err)
		log.Printf("discordbot.image: %v", resp.Data.Content)
		return resp
	}

	final, _ := m.Tournament().Final()
	embed := &discordgo.MessageEmbed{
		Title:       "Knockout bracket",
		Type:        discordgo.EmbedTypeRich,
		Description: final.String(),
		Image:       &discordgo.MessageEmbedImage{URL: url},
	}
	resp.Data.Embeds = []*discordgo.MessageEmbed{embed}
	if opt, ok := opts["broadcast"]; ok && opt.BoolValue() {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
