package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/studytrack/backend/api/handler"
	"github.com/studytrack/backend/internal/config"
	assistantInfra "github.com/studytrack/backend/internal/infrastructure/assistant"
	"github.com/studytrack/backend/internal/infrastructure/kvstore"
	"github.com/studytrack/backend/internal/infrastructure/monitor"
	"github.com/studytrack/backend/internal/infrastructure/writeback"
	"github.com/studytrack/backend/internal/pomodoro"
	"github.com/studytrack/backend/internal/router"
	"github.com/studytrack/backend/internal/services"
	"github.com/studytrack/backend/internal/services/lifecycle"
	"github.com/studytrack/backend/pkg/httpcontext"
	"github.com/studytrack/backend/pkg/logger"
	"github.com/studytrack/backend/repository/kv"
	"github.com/studytrack/backend/storage"
	assistantUC "github.com/studytrack/backend/usecase/assistant"
	profileUC "github.com/studytrack/backend/usecase/profile"
	studyUC "github.com/studytrack/backend/usecase/study"
	subjectUC "github.com/studytrack/backend/usecase/subject"
	taskUC "github.com/studytrack/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := openStore(cfg.Store)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err), zap.String("backend", cfg.Store.Backend))
	}
	manager.Register("store", func(ctx context.Context) error {
		return store.Close()
	})

	gateway := storage.NewGateway(store, zapLogger)

	queue, err := writeback.Open(cfg.Writeback.Path, "pending")
	if err != nil {
		zapLogger.Fatal("failed to open writeback queue", zap.Error(err))
	}
	manager.Register("writeback_queue", func(ctx context.Context) error {
		return queue.Close()
	})

	mon := monitor.New(store, queue, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	writebackSvc := services.NewWriteback(queue, gateway, mon, zapLogger, services.WritebackConfig{
		Interval:   cfg.Writeback.SyncInterval,
		MaxRetries: cfg.Writeback.MaxRetry,
	})
	writebackSvc.Start()
	manager.Register("writeback", func(ctx context.Context) error {
		writebackSvc.Stop(ctx)
		return nil
	})

	taskRepo := kv.NewTaskRepository(appCtx, gateway, writebackSvc, zapLogger)
	subjectRepo := kv.NewSubjectRepository(appCtx, gateway, writebackSvc, zapLogger)
	sessionRepo := kv.NewSessionRepository(appCtx, gateway, writebackSvc, zapLogger)
	streakRepo := kv.NewStreakRepository(appCtx, gateway, writebackSvc, zapLogger)
	profileRepo := kv.NewProfileRepository(appCtx, gateway, writebackSvc, zapLogger)

	taskUseCase := taskUC.New(taskRepo, zapLogger)
	subjectUseCase := subjectUC.New(subjectRepo, sessionRepo, zapLogger)
	studyUseCase := studyUC.New(sessionRepo, streakRepo, subjectRepo, zapLogger)
	profileUseCase := profileUC.New(profileRepo, zapLogger)

	assistantClient := assistantInfra.NewClient(assistantInfra.Options{
		Endpoint: cfg.Assistant.Endpoint,
		APIKey:   cfg.Assistant.APIKey,
		Timeout:  cfg.Assistant.Timeout,
	}, zapLogger)
	assistantUseCase := assistantUC.New(assistantClient, assistantInfra.PlainTextExtractor{}, zapLogger)

	engine := pomodoro.New(cfg.Pomodoro.FocusDuration, cfg.Pomodoro.BreakDuration, zapLogger)
	if prefs := profileUseCase.GetProfile(appCtx).StudyPreferences; prefs.FocusSessionDuration > 0 {
		engine.Configure(
			time.Duration(prefs.FocusSessionDuration)*time.Minute,
			time.Duration(prefs.BreakDuration)*time.Minute,
		)
	}
	engine.OnFocusComplete(func(subject string, minutes int) {
		ctx, done := context.WithTimeout(context.Background(), cfg.Context.RequestTimeout)
		defer done()
		if _, _, err := studyUseCase.RecordSession(ctx, subject, minutes); err != nil {
			zapLogger.Error("failed to record focus session", zap.Error(err))
		}
	})
	engine.Start()
	manager.Register("pomodoro", func(ctx context.Context) error {
		engine.Stop()
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Subject:   apiHandler.NewSubjectHandler(subjectUseCase, ctxAdapter, zapLogger),
		Study:     apiHandler.NewStudyHandler(studyUseCase, ctxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Assistant: apiHandler.NewAssistantHandler(assistantUseCase, ctxAdapter, zapLogger),
		Timer:     apiHandler.NewTimerHandler(engine, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func openStore(cfg config.StoreConfig) (kvstore.Store, error) {
	switch cfg.Backend {
	case "memory":
		return kvstore.NewMemory(), nil
	case "redis":
		return kvstore.OpenRedis(kvstore.RedisOptions{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return kvstore.OpenBolt(cfg.BoltPath, "studytrack")
	}
}
