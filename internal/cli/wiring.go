package cli

import (
	"context"
	"fmt"
	"log"

	"personality-quiz/internal/app"
	"personality-quiz/internal/catalog"
	"personality-quiz/internal/config"
	"personality-quiz/internal/history"
	"personality-quiz/internal/infra/memory"
	pgstore "personality-quiz/internal/infra/postgres"
	redisstore "personality-quiz/internal/infra/redis"
	"personality-quiz/internal/infra/sqlite"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// deps holds everything a command needs; close releases connections.
type deps struct {
	cfg     config.Config
	catalog *catalog.Catalog
	history *history.Store
	service *app.QuizService
	closers []func()
}

func (r *deps) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func loadDeps(ctx context.Context, configPath string, opts app.Options) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return buildDeps(ctx, cfg, opts)
}

func buildDeps(ctx context.Context, cfg config.Config, opts app.Options) (*deps, error) {
	rt := &deps{cfg: cfg}

	var pool *pgxpool.Pool
	if cfg.Storage.Backend == config.BackendPostgres || cfg.Quiz.Source == config.SourcePostgres {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
	}

	kv, err := buildKV(cfg, pool, rt)
	if err != nil {
		rt.close()
		return nil, err
	}

	var loader catalog.Loader
	switch cfg.Quiz.Source {
	case config.SourceFiles:
		loader = catalog.NewFileLoader(cfg.Quiz.Dir)
	case config.SourcePostgres:
		loader = pgstore.NewQuizLoader(pool)
	default:
		loader = catalog.BuiltinLoader()
	}

	// flags can only switch shuffling on
	opts.RandomizeQuestions = opts.RandomizeQuestions || cfg.Quiz.RandomizeQuestions
	opts.RandomizeAnswers = opts.RandomizeAnswers || cfg.Quiz.RandomizeAnswers

	rt.catalog = catalog.New(loader)
	rt.history = history.NewStore(kv, cfg.History.Key)
	rt.service = app.NewQuizService(rt.catalog, rt.history, opts)
	return rt, nil
}

func buildKV(cfg config.Config, pool *pgxpool.Pool, rt *deps) (history.KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Printf("history is kept in memory and will not survive this run")
		return memory.NewKV(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		return redisstore.NewKV(client, cfg.Redis.Prefix), nil
	case config.BackendPostgres:
		return pgstore.NewKV(pool), nil
	default:
		kv, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = kv.Close() })
		return kv, nil
	}
}
