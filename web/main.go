package main

import (
	"encoding/base64"
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tempora.com/tempora/core"
	"tempora.com/tempora/infrastructure/devops"
	"tempora.com/tempora/web/handlers/timesheet"
	"tempora.com/tempora/web/middlewares"
	"tempora.com/tempora/workflow"
)

func main() {
	configPath := flag.String("config", "config/tempora.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := devops.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := devops.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dm, err := core.New(cfg.Database.DSN, cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dm.Close()
	if cfg.Log.Level == "debug" {
		dm.LogLevel = core.LogLevelInfo
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.Auth.SigningSecret)
	if err != nil {
		logger.Fatal("failed to decode JWT secret", zap.Error(err))
	}

	svc := workflow.NewService(workflow.OrgDirectory{}, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		timesheet.Register(protected, dm, svc)
	}

	logger.Info("tempora workflow service listening", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
