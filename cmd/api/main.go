package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Rugbydude80/localops-ai-sub001/internal/collab"
	"github.com/Rugbydude80/localops-ai-sub001/internal/config"
	"github.com/Rugbydude80/localops-ai-sub001/internal/handler"
	"github.com/Rugbydude80/localops-ai-sub001/internal/reasoning"
	"github.com/Rugbydude80/localops-ai-sub001/internal/repository"
	"github.com/Rugbydude80/localops-ai-sub001/internal/scheduler"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", "error", err)
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * rabbitmq (notification dispatch)
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open rabbitmq channel", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("cannot declare notification queue", "error", err)
		return
	}

	/**********************************************
	 * redis (reasoning insight cache)
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * core subsystems
	 **********************************************/
	params := scheduler.DefaultParameters()
	params.WeightLow = cfg.Solver.WeightLow
	params.WeightMedium = cfg.Solver.WeightMedium
	params.WeightHigh = cfg.Solver.WeightHigh
	params.WeightCritical = cfg.Solver.WeightCritical
	params.ValidityFloor = cfg.Solver.ValidityFloor
	params.DefaultMaxHoursPerWeek = cfg.Solver.DefaultMaxHours
	solver := scheduler.NewSolver(params)

	var insightClient reasoning.InsightClient
	if cfg.AI.Enabled && cfg.AI.Endpoint != "" {
		insightClient = reasoning.NewHTTPClient(cfg.AI.Endpoint, cfg.AI.APIKey, time.Duration(cfg.AI.Timeout)*time.Second)
	}
	insightCache := reasoning.NewRedisCache(rdb, time.Duration(cfg.Redis.InsightExpiration)*time.Second)
	reasoner := reasoning.NewEngine(insightClient, insightCache)

	collabState := collab.NewState(collab.Options{
		LockTimeout:    time.Duration(cfg.Collab.LockTimeout) * time.Second,
		ConflictWindow: time.Duration(cfg.Collab.ConflictWindow) * time.Second,
		SendBuffer:     cfg.Collab.SendBuffer,
	})

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, ch, solver, reasoner, collabState)
	if err != nil {
		logger.Error("cannot create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("cannot start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
