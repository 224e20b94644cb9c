package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "cypherbot/internal/command/core"

	"cypherbot/internal/command"
	"cypherbot/internal/command/media"
	"cypherbot/internal/command/profile"
	rendercmd "cypherbot/internal/command/render"
	"cypherbot/internal/command/updatecmd"
	"cypherbot/internal/config"
	"cypherbot/internal/logging"
	"cypherbot/internal/media/search"
	"cypherbot/internal/media/sources/invidious"
	"cypherbot/internal/media/sources/scrapeapi"
	"cypherbot/internal/media/sources/tikwm"
	"cypherbot/internal/media/sources/ytmp3"
	"cypherbot/internal/media/sources/ytnative"
	"cypherbot/internal/platform/gateway"
	"cypherbot/internal/policy"
	"cypherbot/internal/render"
	"cypherbot/internal/retrieve"
	"cypherbot/internal/router"
	"cypherbot/internal/update"
	v "cypherbot/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFile)
	logger.Info().Str("version", v.Version).Msgf("Starting %s...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	access := policy.NewAccess(policy.Mode(cfg.BotMode), cfg.OwnerJID)

	guards := policy.NewGuardSet()
	guards.Add(profile.GuardFamily, policy.NewGuard(cfg.ProfileMinInterval, cfg.ProfileMaxPerWindow, cfg.ProfileWindow))
	guards.StartAll(ctx)

	engine := retrieve.NewEngine(cfg.RetrieveTimeout, logger)
	searcher := search.NewYouTube()

	transport := gateway.New(cfg.GatewayURL, cfg.GatewayToken, cfg.SendRate, cfg.SendBurst, logger)

	registerCommands(cfg, engine, searcher, logger)

	r := router.New(command.Default, access, guards, cfg, transport, logger)
	transport.OnMessage(r.HandleIncoming)

	errCh := make(chan error, 1)
	go func() {
		errCh <- transport.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info().Msgf("Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("gateway error")
		}
		cancel()
	}

	logger.Info().Msg("Bot exited cleanly")
}

// registerCommands wires the dependency-carrying commands. Stateless ones
// register themselves from init() via the blank import above.
func registerCommands(cfg *config.Config, engine *retrieve.Engine, searcher search.Searcher, logger zerolog.Logger) {
	audio := []retrieve.Strategy{ytnative.New()}
	audio = append(audio, ytmp3.DefaultConverters()...)
	audio = append(audio, invidious.DefaultInstances()...)

	command.Register(&media.PlayCommand{Search: searcher, Engine: engine, Strategies: audio})
	command.Register(&media.MusicCommand{Search: searcher})
	command.Register(&media.TikTokCommand{Engine: engine, Strategies: []retrieve.Strategy{tikwm.NewHD(), tikwm.New()}})
	command.Register(&media.InstagramCommand{Engine: engine, Strategies: scrapeapi.InstagramEndpoints()})
	command.Register(&media.SnapchatCommand{Engine: engine, Strategies: scrapeapi.SnapchatEndpoints()})

	command.Register(&profile.DPCommand{Engine: engine},
		command.WithReplyRequired("❌ Reply to someone's message to fetch their profile picture."),
		command.WithRateGuard(profile.GuardFamily),
	)
	command.Register(&profile.ProfileCommand{Engine: engine})

	command.Register(&rendercmd.ThreeDCommand{Engine: engine, Strategies: render.DefaultEndpoints()})

	var syncer update.Syncer
	if cfg.UpdateRepoURL != "" {
		wd, _ := os.Getwd()
		syncer = update.NewGitSyncer(cfg.UpdateRepoURL, wd, logger)
	}
	command.Register(&updatecmd.UpdateCommand{Syncer: syncer}, command.WithOwnerCheck())
}
