package main

import (
	"context"
	"errors"

	"github.com/fystack/lotofacil-generator/internal/generator"
	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/events"
	"github.com/fystack/lotofacil-generator/pkg/infra"
	"github.com/fystack/lotofacil-generator/pkg/kvstore"
	"github.com/fystack/lotofacil-generator/pkg/model"
	"github.com/fystack/lotofacil-generator/pkg/repository"
	"github.com/fystack/lotofacil-generator/pkg/sigcache"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
	"github.com/fystack/lotofacil-generator/pkg/store/gamestore"
)

// app holds the services a command needs. Only the draw store is mandatory;
// redis, postgres and nats are connected when configured.
type app struct {
	cfg     *config.Config
	draws   drawstore.Store
	service *generator.Service
	closers []func()
}

type appOptions struct {
	withDatabase bool
	withEvents   bool
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: cfg}

	kv, err := kvstore.NewFromConfig(cfg.Services.KVS)
	if err != nil {
		return nil, err
	}
	a.draws = drawstore.New(kv)
	a.closers = append(a.closers, func() { _ = a.draws.Close() })

	var redisClient infra.RedisClient
	if cfg.Services.Cache.Type == enum.CacheTypeRedis {
		redisClient, err = infra.NewRedisClient(cfg.Services.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
	}
	cache, err := sigcache.NewFromConfig(cfg.Services.Cache, redisClient)
	if err != nil {
		a.Close()
		return nil, err
	}
	if mem, ok := cache.(*sigcache.Memory); ok {
		a.closers = append(a.closers, func() { logCacheStats(mem) })
	}

	serviceOpts := []generator.Option{generator.WithLogger(logger.L())}

	if opts.withDatabase && cfg.Services.Database != nil {
		db, err := infra.NewDBConnection(cfg.Services.Database.URL, cfg.Environment)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := db.AutoMigrate(&model.SavedGame{}); err != nil {
			a.Close()
			return nil, err
		}
		repo := repository.NewRepository[model.SavedGame](db)
		serviceOpts = append(serviceOpts, generator.WithGameStore(gamestore.New(repo)))
	}

	if opts.withEvents && cfg.Services.Nats != nil {
		nc, err := infra.GetNATSConnection(*cfg.Services.Nats, cfg.Environment)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, nc.Close)

		subject := cfg.Services.Nats.SubjectPrefix
		queue, err := infra.NewJetStreamQueue(ctx, nc, cfg.Services.Nats.Stream, []string{subject + ".>", subject})
		if err != nil {
			a.Close()
			return nil, err
		}
		emitter := events.NewEmitter(queue, subject)
		a.closers = append(a.closers, emitter.Close)
		serviceOpts = append(serviceOpts, generator.WithEmitter(emitter))
	}

	a.service = generator.NewService(a.draws, cache, serviceOpts...)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func logCacheStats(mem *sigcache.Memory) {
	stats := mem.Stats()
	logger.Debug("Profile cache stats",
		"hits", stats.Hits,
		"misses", stats.Misses,
		"evictions", stats.Evictions,
		"entries", mem.Len(),
	)
}

var errNoDatabase = errors.New("services.database is not configured")
