/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/tshstats/tsh"
)

type TshSubCommand string

const (
	TshAboutCmd      TshSubCommand = "about"
	TshHelpCmd       TshSubCommand = "help"
	TshStandingsCmd  TshSubCommand = "standings"
	TshLeadersCmd    TshSubCommand = "leaders"
	TshCrossTableCmd TshSubCommand = "crosstable"
	TshDivisionsCmd  TshSubCommand = "divisions"
	TshPlayerCmd     TshSubCommand = "player"
)

const defaultLeaderCount = 5

type cmdOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

func (b *bot) tshCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.tshHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := b.tshSubCmdHdlrs[TshSubCommand(subName)]
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

func subCommandOptions(inter *discordgo.Interaction) cmdOptions {
	opts := make(cmdOptions)
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		opts[opt.Name] = opt
	}

	return opts
}

func (opts cmdOptions) str(name string) string {
	if opt, ok := opts[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (opts cmdOptions) broadcast() bool {
	if opt, ok := opts["broadcast"]; ok {
		return opt.BoolValue()
	}
	return false
}

//go:embed about.txt
var aboutText string

func (b *bot) tshAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func (b *bot) tshHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

// loadResults fetches the requested (or configured) tourney and narrows it to
// the requested division, if any.
func (b *bot) loadResults(ctx context.Context,
	opts cmdOptions) (*tsh.Results, error) {

	source := opts.str("url")
	if source == "" {
		source = b.defaultURL
	}
	if source == "" {
		return nil, fmt.Errorf("please provide a tourney url")
	}
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") ||
		u.Host == "" {
		return nil, fmt.Errorf("%q is not an http(s) url", source)
	}
	if !b.hostAllowed(u.Hostname()) {
		log.Printf("discordbot.loadResults: rejecting %v: host not allowed",
			source)
		return nil, fmt.Errorf("host %q is not an allowed tourney source",
			u.Hostname())
	}

	results, err := b.client.GetResults(ctx, source)
	if err != nil {
		return nil, err
	}

	return results.Filter(opts.str("division"))
}

// hostAllowed reports whether the bot may fetch from host. The configured
// default url's host is always allowed; with no default and no allowed
// hosts, nothing is.
func (b *bot) hostAllowed(host string) bool {
	if host == "" {
		return false
	}
	if b.defaultURL != "" {
		if u, err := url.Parse(b.defaultURL); err == nil &&
			strings.EqualFold(u.Hostname(), host) {
			return true
		}
	}
	for _, h := range b.allowedHosts {
		if h == "*" || strings.EqualFold(strings.TrimSpace(h), host) {
			return true
		}
	}

	return false
}

// respond runs build and fills in resp, recording the outcome under sub
func (b *bot) respond(ctx context.Context, sub TshSubCommand,
	inter *discordgo.Interaction,
	build func(results *tsh.Results, opts cmdOptions) (string, error)) *discordgo.InteractionResponse {

	start := time.Now()
	resp := newEphemeralResponse()
	opts := subCommandOptions(inter)

	results, err := b.loadResults(ctx, opts)
	if err == nil {
		var output string
		output, err = build(results, opts)
		if err == nil {
			// Wrap output in code block for monospace formatting in Discord
			resp.Data.Content = fmt.Sprintf("```\n%s```",
				truncateContent(output))
		}
	}
	b.metrics.observe(sub, start, err)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching %v: %v", sub, err)
		log.Printf("discordbot.%v: %v", sub, resp.Data.Content)
		return resp
	}

	if opts.broadcast() {
		resp.Data.Flags = 0
	}

	return resp
}

// tshStandingsCmdHandler handles /tsh standings
func (b *bot) tshStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.respond(ctx, TshStandingsCmd, inter,
		func(results *tsh.Results, _ cmdOptions) (string, error) {
			return tsh.BuildStandingsOutput(results), nil
		})
}

// tshLeadersCmdHandler handles /tsh leaders, defaulting to the top 5 high
// scores
func (b *bot) tshLeadersCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.respond(ctx, TshLeadersCmd, inter,
		func(results *tsh.Results, opts cmdOptions) (string, error) {
			category := tsh.LeaderHighScore
			if c := opts.str("category"); c != "" {
				var err error
				category, err = tsh.ParseLeaderCategory(c)
				if err != nil {
					return "", err
				}
			}
			count := defaultLeaderCount
			if opt, ok := opts["count"]; ok {
				count = int(opt.IntValue())
			}
			// enforce bounds
			if count <= 0 || count > 25 {
				count = defaultLeaderCount
			}

			var sb strings.Builder
			for _, ds := range results.Divisions {
				sb.WriteString(tsh.BuildLeadersOutput(ds, category, count))
			}
			return sb.String(), nil
		})
}

// tshCrossTableCmdHandler handles /tsh crosstable
func (b *bot) tshCrossTableCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.respond(ctx, TshCrossTableCmd, inter,
		func(results *tsh.Results, opts cmdOptions) (string, error) {
			var sb strings.Builder
			for _, ds := range results.Divisions {
				sb.WriteString(tsh.BuildCrossTableOutput(ds,
					len(results.Divisions) > 1, opts.str("player")))
			}
			return sb.String(), nil
		})
}

// tshDivisionsCmdHandler handles /tsh divisions
func (b *bot) tshDivisionsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.respond(ctx, TshDivisionsCmd, inter,
		func(results *tsh.Results, _ cmdOptions) (string, error) {
			if len(results.Divisions) == 0 {
				return "No divisions found\n", nil
			}
			var sb strings.Builder
			for _, ds := range results.Divisions {
				sb.WriteString(tsh.BuildSummaryOutput(ds))
			}
			return sb.String(), nil
		})
}

// tshPlayerCmdHandler handles /tsh player
func (b *bot) tshPlayerCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	if subCommandOptions(inter).str("name") == "" {
		resp := newEphemeralResponse()
		resp.Data.Content = "Please provide a player name."
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	return b.respond(ctx, TshPlayerCmd, inter,
		func(results *tsh.Results, opts cmdOptions) (string, error) {
			return tsh.BuildPlayerOutput(results.FindPlayer(opts.str("name"))),
				nil
		})
}

func tshCommand() *discordgo.ApplicationCommand {
	urlOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "url",
		Description: "tourney.js or results page url (default is the configured event)",
		Required:    false,
	}
	divisionOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "division",
		Description: "Only show this division",
		Required:    false,
	}
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(TshCmd),
		Description: "Scrabble tournament results from tsh; try /tsh help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshHelpCmd),
				Description: "Show usage for tsh",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshAboutCmd),
				Description: "Show information about tshstats",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshStandingsCmd),
				Description: "Get current standings",
				Options: []*discordgo.ApplicationCommandOption{
					urlOpt, divisionOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshLeadersCmd),
				Description: "Get category leaders",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "category",
						Description: "Leader category (default is high score)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "high score", Value: "high"},
							{Name: "average score", Value: "average"},
							{Name: "rating gain", Value: "rating"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "count",
						Description: "Number of leaders per division (default is 5)",
						Required:    false,
					},
					urlOpt, divisionOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshCrossTableCmd),
				Description: "Get round by round results",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "Only show this player and their opponents",
						Required:    false,
					},
					urlOpt, divisionOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshDivisionsCmd),
				Description: "Get per-division game summaries",
				Options: []*discordgo.ApplicationCommandOption{
					urlOpt, divisionOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TshPlayerCmd),
				Description: "Get a player's record and games",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "All or part of the player's name",
						Required:    true,
					},
					urlOpt, divisionOpt, broadcastOpt,
				},
			},
		},
	}
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
