package main

import (
	"context"
	"strings"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/controllers"
	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/pkg/routes"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/board"
	"github.com/DedS3t/flarepoly-backend/platform/cache"
	"github.com/DedS3t/flarepoly-backend/platform/chain"
	"github.com/DedS3t/flarepoly-backend/platform/config"
	"github.com/DedS3t/flarepoly-backend/platform/database"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	"github.com/DedS3t/flarepoly-backend/platform/logging"
	"github.com/DedS3t/flarepoly-backend/platform/queries"
	socket "github.com/DedS3t/flarepoly-backend/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

const (
	localGame = "local"
	tokenTTL  = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	log := logging.For("main")
	ctx := context.Background()

	b := board.Default()
	if cfg.BoardFile != "" {
		if b, err = board.LoadProperties(cfg.BoardFile); err != nil {
			log.WithError(err).Fatal("loading board")
		}
	}

	api := &controllers.API{
		Challenges:   cache.NewMemoryChallenges(),
		ChainID:      cfg.ChainID,
		JWTSecret:    []byte(cfg.JWTSecret),
		ChallengeTTL: cfg.ChallengeTTL,
		TokenTTL:     tokenTTL,
		Log:          logging.For("api"),
	}
	var publishers []game.Publisher
	var refs chain.ReferenceStore

	if cfg.RedisEnabled() {
		pool := cache.CreateRedisPool(cfg.RedisURL)
		defer pool.Close()
		snapshots := &cache.SnapshotCache{Pool: pool}
		publishers = append(publishers, snapshots)
		api.Snapshots = snapshots
		refs = &cache.RedisRefs{Pool: pool}
		api.Challenges = &cache.RedisChallenges{Pool: pool}
		log.Info("redis enabled")
	}

	if cfg.DatabaseEnabled() {
		db := database.PostgreSQLConnection(cfg)
		defer db.Close()
		if err := database.CreateSchema(ctx, db); err != nil {
			log.WithError(err).Fatal("creating schema")
		}
		api.DB = db
		publishers = append(publishers, &queries.SnapshotStore{DB: db})
		log.Info("postgres enabled")
	}

	var verifier game.Verifier
	var rate game.RateSource
	if cfg.RPCURL != "" {
		client, err := chain.Dial(ctx, cfg.RPCURL)
		if err != nil {
			log.WithError(err).Fatal("dialing rpc")
		}
		defer client.Close()
		verifier = chain.NewTokenVerifier(client, cfg.TokenContract, refs)
		api.Balances = chain.NewTokenBalances(client, cfg.TokenContract)
		fixed, err := chain.NewFixedRate(cfg.RawPerCoin)
		if err != nil {
			log.WithError(err).Fatal("parsing RAW_PER_COIN")
		}
		rate = fixed
	} else if cfg.RequireSettlement {
		log.Warn("FLARE_RPC_URL is not set, settlements will fail verification")
	}

	var games *game.Manager
	hub, err := socket.CreateSocketIOServer(func(ctx context.Context, id string) (models.Snapshot, error) {
		s, err := games.Get(id)
		if err != nil {
			return models.Snapshot{}, err
		}
		return s.Snapshot(ctx)
	})
	if err != nil {
		log.WithError(err).Fatal("creating socket server")
	}
	defer hub.Close()
	publishers = append(publishers, hub)

	games = game.NewManager(func(id string) *game.Session {
		return game.NewSession(id, game.Config{
			Players:           cfg.Players,
			StartBalance:      cfg.StartBalance,
			StartBonus:        cfg.StartBonus,
			RequireSettlement: cfg.RequireSettlement,
			Treasury:          cfg.Treasury,
			MinConfirmations:  cfg.MinConfirmations,
			VerifyTimeout:     cfg.VerifyTimeout,
			LogCap:            cfg.LogCap,
			Board:             b,
			Chance:            board.DefaultChance(),
		}, game.Deps{
			Gate:       auth.NewGate(nil, cfg.ChainID),
			Dice:       dice.NewSeeded(cfg.DiceSeed),
			Verifier:   verifier,
			Rate:       rate,
			Publishers: publishers,
			Log:        logging.For("game").WithField("game", id),
		})
	})
	defer games.Close()
	games.GetOrCreate(localGame)
	api.Games = games

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
	}))

	guard := routes.Guard(api.JWTSecret)
	routes.AuthRoutes(app, api, guard)
	routes.GameRoutes(app, api, guard)
	routes.LocalRoutes(app, api, guard, localGame)

	go func() {
		if err := hub.ListenAndServe(cfg.SocketAddr, cfg.CORSOrigins); err != nil {
			log.WithError(err).Error("socket server stopped")
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.WithError(err).Error("http server stopped")
	}
}
