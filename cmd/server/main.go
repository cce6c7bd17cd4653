package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/consulted/consulted-api/internal/config"
	"github.com/consulted/consulted-api/internal/database"
	"github.com/consulted/consulted-api/internal/handler"
	"github.com/consulted/consulted-api/internal/logger"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/queue"
	"github.com/consulted/consulted-api/internal/repository"
	"github.com/consulted/consulted-api/internal/router"
	"github.com/consulted/consulted-api/internal/service"
	"github.com/consulted/consulted-api/internal/utils"
	"github.com/consulted/consulted-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Configure(logger.Config{})
		log.Fatal().Err(err).Msg("config")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	users := repository.NewUserRepo(db)
	students := repository.NewStudentRepo(db)
	professors := repository.NewProfessorRepo(db)
	programs := repository.NewProgramRepo(db)
	consultations := repository.NewConsultationRepo(db)

	// Program catalog: the programs table wins, PROGRAM_CODES is the fallback.
	pol := policy.New(cfg.ProgramCodes...)
	loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if codes, err := programs.Codes(loadCtx); err != nil || len(codes) == 0 {
		log.Warn().Err(err).Strs("fallback", cfg.ProgramCodes).Msg("program catalog not loaded from database")
	} else {
		pol.SetCatalog(codes...)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and caching disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		events = service.NewAMQPPublisher(cfg.Events.URL)
		if cfg.Events.RunConsumer {
			go func() {
				if err := queue.StartDecisionConsumer(ctx, cfg.Events.URL, cfg.Events.LogDir); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("decision consumer stopped")
				}
			}()
		}
	}

	// Services
	issuer := utils.NewTokenIssuer(cfg.Token)
	authSvc := service.NewAuthService(users, students, professors, issuer)
	consultSvc := service.NewConsultationService(consultations, students, professors, events)
	dirSvc := service.NewDirectoryService(students, professors, programs, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	router.Register(e, router.Deps{
		Issuer:    issuer,
		Policy:    pol,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Auth:      handler.NewAuthHandler(authSvc),
		Student:   handler.NewStudentHandler(dirSvc, consultSvc),
		Professor: handler.NewProfessorHandler(dirSvc, consultSvc),
		Admin:     handler.NewAdminHandler(dirSvc, consultSvc),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
