package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipe-recommender/internal/api"
	"recipe-recommender/internal/api/handlers/health"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/adapter"
	"recipe-recommender/internal/core/ai"
	"recipe-recommender/internal/core/allergen"
	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/core/events"
	"recipe-recommender/internal/core/instruction"
	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/core/pipeline"
	"recipe-recommender/internal/core/ranking"
	"recipe-recommender/internal/core/safety"
	"recipe-recommender/internal/infrastructure/cache"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/infrastructure/journal"
	"recipe-recommender/internal/infrastructure/persistence"
	"recipe-recommender/internal/pkg/common"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx := context.Background()
	checks := map[string]health.Check{}

	// 資料庫
	db, err := persistence.SetupDatabase(ctx, cfg.Database, cfg.App.Debug)
	if err != nil {
		common.LogFatal("Failed to initialize database", zap.Error(err))
	}
	checks["database"] = func(ctx context.Context) error { return persistence.Ping(ctx, db) }

	// 候選食譜快取
	var recipes domain.RecipeStore = persistence.NewRecipeRepository(db)
	if cfg.Cache.Enabled {
		store, err := newCacheStore(ctx, cfg.Cache, checks)
		if err != nil {
			common.LogFatal("Failed to initialize cache", zap.Error(err))
		}
		defer store.Close()
		recipes = cache.NewRecipeStore(recipes, store, cfg.Cache.Backend)
	}

	// 互動事件：資料庫或獨立日誌，經由非同步佇列寫入
	var sink domain.EventRecorder = persistence.NewEventRepository(db)
	if cfg.Events.Backend == config.EventsJournal {
		j, err := journal.Open(cfg.Events.JournalPath)
		if err != nil {
			common.LogFatal("Failed to open event journal", zap.Error(err))
		}
		defer j.Close()
		checks["journal"] = j.Ping
		sink = j
	}
	dispatcher := events.NewDispatcher(sink, events.Config{
		Workers:      cfg.Events.Workers,
		QueueSize:    cfg.Events.QueueSize,
		WriteTimeout: cfg.Pipeline.EventTimeout,
	})

	// 推薦理由
	var rationale domain.RationaleWriter = ai.TemplateWriter{}
	if cfg.OpenRouter.Enabled && cfg.OpenRouter.APIKey != "" {
		rationale = ai.NewOpenRouterWriter(cfg.OpenRouter)
	}

	orchestrator, err := newOrchestrator(cfg, persistence.NewProfileRepository(db), recipes, dispatcher, rationale)
	if err != nil {
		common.LogFatal("Failed to initialize recommendation pipeline", zap.Error(err))
	}

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Close()

	router := api.SetupRouter(cfg, api.Dependencies{
		Recommender:  orchestrator,
		Checks:       checks,
		Queue:        dispatcher.Status,
		Deduplicator: dedup,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
			zap.String("database", cfg.Database.Driver),
			zap.String("events", cfg.Events.Backend),
			zap.Bool("ai_rationale", cfg.OpenRouter.Enabled),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	// 伺服器停止後再清空事件佇列
	dispatcher.Close()
	common.LogInfo("Server exited", zap.Int64("events_written", dispatcher.Status().ProcessedCount))
}

// newCacheStore 依設定建立記憶體或 Redis 快取
func newCacheStore(ctx context.Context, cfg config.CacheConfig, checks map[string]health.Check) (cache.Store, error) {
	if cfg.Backend == config.CacheRedis {
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		checks["redis"] = store.Ping
		return store, nil
	}
	return cache.NewManager(cache.Options{
		MaxSize:         cfg.MaxSize,
		TTL:             cfg.TTL,
		CleanupInterval: cfg.CleanupInterval,
	}), nil
}

// newOrchestrator 以設定組裝推薦流程的各元件
func newOrchestrator(cfg *config.Config, profiles domain.ProfileStore, recipes domain.RecipeStore, sink domain.EventRecorder, rationale domain.RationaleWriter) (*pipeline.Orchestrator, error) {
	kb := allergen.Default()
	estimator := nutrition.NewEstimator(cfg.Nutrition)

	return pipeline.NewOrchestrator(pipeline.Dependencies{
		Profiles:      profiles,
		Recipes:       recipes,
		Events:        sink,
		Rationale:     rationale,
		KnowledgeBase: kb,
		Estimator:     estimator,
		Validator:     safety.NewValidator(kb, estimator, cfg.SafetyRules, cfg.Safety),
		Adapter:       adapter.NewAdapter(kb, cfg.Adapter),
		Structurer:    instruction.NewStructurer(cfg.Pipeline.MaxSteps),
		Ranker:        ranking.NewRanker(cfg.Ranking),
	}, pipeline.Config{
		TopN:             cfg.Pipeline.TopN,
		MinViable:        cfg.Pipeline.MinViable,
		CandidateLimit:   cfg.Pipeline.CandidateLimit,
		MealsPerDay:      cfg.Adapter.MealsPerDay,
		FetchTimeout:     cfg.Pipeline.FetchTimeout,
		EventTimeout:     cfg.Pipeline.EventTimeout,
		RationaleTimeout: cfg.Pipeline.RationaleTimeout,
		CalorieBandMin:   cfg.Pipeline.CalorieBandMin,
		CalorieBandMax:   cfg.Pipeline.CalorieBandMax,

		DefaultDailyCalories: cfg.Pipeline.DefaultDailyCalories,
	})
}
