/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikeb26/tshstats/internal/config"
	"github.com/mikeb26/tshstats/internal/httpcache"
	"github.com/mikeb26/tshstats/tsh"
)

type TopLevelCommand string

const (
	TshCmd TopLevelCommand = "tsh"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

// bot holds everything an interaction needs; handlers hang off of it so
// tests can point it at their own tourney server.
type bot struct {
	session      *discordgo.Session
	pubKey       ed25519.PublicKey
	appID        string
	cmdID        string
	client       *tsh.Client
	defaultURL   string
	// hosts besides defaultURL's that a url option may name
	allowedHosts []string
	metrics      *botMetrics

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
	tshSubCmdHdlrs   map[TshSubCommand]CmdHandler
}

func newBot(ctx context.Context, cfg *config.Config,
	reg prometheus.Registerer) (*bot, error) {

	pubKeyBytes, err := hex.DecodeString(cfg.Discord.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key is %v bytes; expected %v",
			len(pubKeyBytes), ed25519.PublicKeySize)
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord client: %w", err)
	}

	httpClient := httpcache.NewCachedHttpClient(ctx, httpcache.Options{
		Bucket: cfg.Cache.Bucket,
		Prefix: cfg.Cache.Prefix,
		Gzip:   cfg.Cache.Gzip,
		MaxAge: cfg.Cache.MaxAge,
	})

	b := newBotWithClient(tsh.NewClient(httpClient, cfg.Source.Marker),
		cfg.Source.URL, reg)
	b.allowedHosts = cfg.Source.AllowedHosts
	b.session = session
	b.pubKey = ed25519.PublicKey(pubKeyBytes)
	b.appID = cfg.Discord.AppID
	b.cmdID = cfg.Discord.CommandID

	return b, nil
}

func newBotWithClient(client *tsh.Client, defaultURL string,
	reg prometheus.Registerer) *bot {

	b := &bot{
		client:     client,
		defaultURL: defaultURL,
		metrics:    newBotMetrics(reg),
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		TshCmd: b.tshCmdHandler,
	}
	b.tshSubCmdHdlrs = map[TshSubCommand]CmdHandler{
		TshAboutCmd:      b.tshAboutCmdHandler,
		TshHelpCmd:       b.tshHelpCmdHandler,
		TshStandingsCmd:  b.tshStandingsCmdHandler,
		TshLeadersCmd:    b.tshLeadersCmdHandler,
		TshCrossTableCmd: b.tshCrossTableCmdHandler,
		TshDivisionsCmd:  b.tshDivisionsCmdHandler,
		TshPlayerCmd:     b.tshPlayerCmdHandler,
	}

	return b
}

func (b *bot) router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Post("/DiscordBot/Interaction", b.interactionHandler)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		b.metrics.rejected.Inc()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v",
			inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)

	return hex.EncodeToString(hash[:]), nil
}

func (b *bot) registerSlashCommands() {
	cmd := tshCommand()
	hash, err := cmdRegistrationHash(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return
	}

	if b.cmdID == "" {
		created, err := b.session.ApplicationCommandCreate(b.appID, "", cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v hash:%v); set discord.command_id",
			created.Name, created.ID, hash)
		return
	}

	updated, err := b.session.ApplicationCommandEdit(b.appID, "", b.cmdID, cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v hash:%v)", updated.Name,
		updated.ID, hash)
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func main() {
	configFile := flag.String("config", "config.yaml",
		"Path to the configuration file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("discordbot.main: failed to load config: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	b, err := newBot(ctx, cfg, reg)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.Discord.ListenAddr)

	if err := http.ListenAndServe(cfg.Discord.ListenAddr,
		b.router(reg)); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
