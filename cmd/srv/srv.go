package main

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/hungercard/backend/config"
	"github.com/hungercard/backend/internal/client"
	"github.com/hungercard/backend/internal/domain"
	"github.com/hungercard/backend/internal/domain/card"
	"github.com/hungercard/backend/internal/repository"
	"github.com/hungercard/backend/pkg/api/coingecko"
	"github.com/hungercard/backend/pkg/api/pinata"
	"github.com/hungercard/backend/pkg/blockchain/eth"
	"github.com/hungercard/backend/pkg/kafka"
	"github.com/hungercard/backend/pkg/logger"
	"github.com/hungercard/backend/pkg/pubsub"
	redisutil "github.com/hungercard/backend/pkg/redis"
	"github.com/hungercard/backend/pkg/router"
	"github.com/hungercard/backend/pkg/storage"
	"github.com/hungercard/backend/pkg/xcontext"
)

type srv struct {
	ctx context.Context
	app *cli.App

	cfg    *config.Configs
	logger logger.Logger
	db     *gorm.DB

	redisClient *redis.Client
	publisher   pubsub.Publisher
	ethClient   eth.EthClient
	storage     storage.Storage

	userRepo          repository.UserRepository
	applicationRepo   repository.ApplicationRepository
	snapshotRepo      repository.WalletSnapshotRepository
	cardRepo          repository.GeneratedCardRepository
	scoringConfigRepo repository.ScoringConfigRepository

	applicationDomain   domain.ApplicationDomain
	scoringConfigDomain domain.ScoringConfigDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.cfg.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	if s.cfg.Redis.Addr == "" {
		return
	}

	redisClient, err := redisutil.NewClient(s.ctx, s.cfg.Redis.Addr)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, price caching disabled: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	if s.cfg.Kafka.Addr == "" {
		return
	}

	publisher, err := kafka.NewPublisher("hungercard-api", []string{s.cfg.Kafka.Addr})
	if err != nil {
		s.logger.Warnf("Cannot connect to kafka, approved events disabled: %v", err)
		return
	}

	s.publisher = publisher
}

func (s *srv) loadEthClient() {
	ethClient := eth.NewEthClient(s.cfg.Eth)
	ethClient.Start(s.ctx)
	s.ethClient = ethClient
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.cfg.Storage)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.snapshotRepo = repository.NewWalletSnapshotRepository()
	s.cardRepo = repository.NewGeneratedCardRepository()
	s.scoringConfigRepo = repository.NewScoringConfigRepository()
}

func (s *srv) loadDomains() {
	priceCaller := client.NewPriceCaller(s.redisClient, coingecko.New())
	walletCaller := client.NewWalletCaller(s.ethClient, priceCaller)
	cardGenerator := card.NewCardGenerator(s.storage)
	pinataEndpoint := pinata.New(s.cfg.Pinata)

	s.applicationDomain = domain.NewApplicationDomain(
		s.applicationRepo,
		s.snapshotRepo,
		s.cardRepo,
		s.scoringConfigRepo,
		walletCaller,
		cardGenerator,
		pinataEndpoint,
		s.publisher,
	)
	s.scoringConfigDomain = domain.NewScoringConfigDomain(s.scoringConfigRepo)
}
