package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/api"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/cache"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/db"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/events"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/logger"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	gdb, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx := context.Background()
	if conf.Database.AutoMigrate {
		if _, err = db.NewMigrator(gdb).Up(ctx); err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	var deps api.Deps

	if conf.Redis.Addr != "" {
		rdb := cache.NewRedisClient(conf.Redis)
		defer rdb.Close()

		if err = rdb.Ping(ctx).Err(); err != nil {
			zap.L().Warn("redis unreachable, resort cache will miss until it recovers", zap.String("addr", conf.Redis.Addr), zap.Error(err))
		}
		deps.ResortCache = cache.NewResortCache(rdb, conf.Redis.TTL)
	}

	if len(conf.Kafka.Brokers) > 0 {
		publisher := events.NewKafkaPublisher(events.NewKafkaWriter(conf.Kafka))
		defer publisher.Close()

		deps.Publisher = publisher
	} else {
		deps.Publisher = events.LogPublisher{}
	}

	s := api.NewServer(conf, gdb, deps)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
