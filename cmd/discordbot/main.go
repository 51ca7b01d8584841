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
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/mikeb26/bracketview/internal"
	"github.com/mikeb26/bracketview/s3store"
	"github.com/mikeb26/bracketview/view"
)

// secrets and ids come from the environment, optionally via .env
const (
	envBotToken  = "DISCORD_BOT_TOKEN"
	envPublicKey = "DISCORD_PUBLIC_KEY"
	envAppID     = "DISCORD_APP_ID"
	envCmdID     = "DISCORD_BRACKET_CMD_ID"
	envCmdHash   = "DISCORD_BRACKET_CMD_HASH"
	envConfig    = "BRACKETVIEW_CONFIG"
	envSource    = "BRACKETVIEW_SOURCE"
)

var botPubKey ed25519.PublicKey
var botAppId string

var client *discordgo.Session

type TopLevelCommand string

const (
	BracketCmd TopLevelCommand = "bracket"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	BracketCmd: bracketCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
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
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v", inter.Type)
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

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

// setup reads secrets and bracket configuration and wires the bracket
// source and image publisher used by the command handlers.
func setup(ctx context.Context) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("discordbot.init: ignoring .env: %v", err)
	}

	pubKeyBytes, err := hex.DecodeString(os.Getenv(envPublicKey))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("discordbot.init: Failed to parse public key from %v: %v",
			envPublicKey, err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)
	botAppId = os.Getenv(envAppID)

	client, err = discordgo.New("Bot " + os.Getenv(envBotToken))
	if err != nil {
		log.Fatalf("dicordbot.init: Failed to initialize discord client: %v", err)
	}

	cfg, err := internal.LoadConfig(os.Getenv(envConfig))
	if err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}
	bracketCfg = cfg
	if kind := os.Getenv(envSource); kind != "" {
		sourceKind = kind
	}
	bracketSource, err = view.NewSource(ctx, sourceKind, cfg)
	if err != nil {
		log.Fatalf("discordbot.init: %v", err)
	}

	store := s3store.New(ctx, cfg.PublishBucket, false, true)
	if err := store.Init(); err != nil {
		log.Printf("discordbot.init: bracket images disabled: %v", err)
	} else {
		store.PublicBaseURL = cfg.PublishBaseURL
		imagePublisher = store
	}
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hexString := hex.EncodeToString(hasher.Sum(nil))

	shouldUpdate := (hexString != os.Getenv(envCmdHash))
	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please set %v to %v",
			envCmdHash, hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	cmd := bracketCommand()

	cmdID := os.Getenv(envCmdID)
	if cmdID == "" {
		created, err := client.ApplicationCommandCreate(botAppId, "", cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", created.Name, created.ID)
	} else if shouldUpdateCmdRegistration(cmd) {
		updated, err := client.ApplicationCommandEdit(botAppId, "", cmdID, cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", updated.Name, updated.ID)
	}
}

func main() {
	setup(context.Background())
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080 (source:%v)", hostname,
		sourceKind)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
