package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/sponsornet/backend/config"
	"github.com/sponsornet/backend/internal/domain"
	"github.com/sponsornet/backend/internal/entity"
	"github.com/sponsornet/backend/internal/repository"
	"github.com/sponsornet/backend/pkg/authenticator"
	"github.com/sponsornet/backend/pkg/kafka"
	"github.com/sponsornet/backend/pkg/logger"
	"github.com/sponsornet/backend/pkg/pubsub"
	"github.com/sponsornet/backend/pkg/router"
	"github.com/sponsornet/backend/pkg/xcontext"
	"github.com/sponsornet/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const kafkaClientID = "sponsornet"

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo        repository.UserRepository
	nftRepo         repository.NftRepository
	nftPurchaseRepo repository.NftPurchaseRepository
	commissionRepo  repository.CommissionRepository
	withdrawalRepo  repository.WithdrawalRepository

	userDomain       domain.UserDomain
	nftDomain        domain.NftDomain
	commissionDomain domain.CommissionDomain
	withdrawalDomain domain.WithdrawalDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher
	closers     []func() error

	router *router.Router
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(cctx.String(configFlag.Name))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	s.loadLogger()
	s.loadSnowFlake()
	s.loadTokenEngine()
	return nil
}

func (s *srv) loadLogger() {
	level := logger.ParseLevel(xcontext.Configs(s.ctx).LogLevel)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(xcontext.Configs(s.ctx).SnowFlake.NodeID)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadTokenEngine() {
	engine := authenticator.NewTokenEngine(xcontext.Configs(s.ctx).Auth.TokenSecret)
	s.ctx = xcontext.WithTokenEngine(s.ctx, engine)
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(), // data source name
		DefaultStringSize:         256,                    // default size for string fields
		DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
		DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
		DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
		SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseGormLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, daily commission runs are not locked")
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
}

func (s *srv) loadPublisher() {
	addr := xcontext.Configs(s.ctx).Kafka.Addr
	if addr == "" {
		s.publisher = pubsub.NewNopPublisher()
		return
	}

	publisher, err := kafka.NewPublisher(kafkaClientID, []string{addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
	s.closers = append(s.closers, publisher.Close)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.nftRepo = repository.NewNftRepository()
	s.nftPurchaseRepo = repository.NewNftPurchaseRepository()
	s.commissionRepo = repository.NewCommissionRepository()
	s.withdrawalRepo = repository.NewWithdrawalRepository()
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.nftDomain = domain.NewNftDomain(
		s.nftRepo, s.nftPurchaseRepo, s.commissionRepo, s.userRepo, s.publisher)
	s.commissionDomain = domain.NewCommissionDomain(
		s.commissionRepo, s.userRepo, s.redisClient, s.publisher)
	s.withdrawalDomain = domain.NewWithdrawalDomain(s.withdrawalRepo, s.userRepo)
}

// loadService opens the database and builds every component used by the api
// and the cron processes.
func (s *srv) loadService() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
}

func (s *srv) close() {
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			log.Printf("Cannot close resource: %v", err)
		}
	}
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}
