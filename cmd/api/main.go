package main

import (
	"context"
	"net/http"
	"os"

	_ "jobs-radius-api/docs"
	"jobs-radius-api/internal/config"
	"jobs-radius-api/internal/handler"
	"jobs-radius-api/internal/middleware"
	"jobs-radius-api/internal/repository"
	"jobs-radius-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title			Jobs Radius API
// @version		1.0
// @description	Finds marketplace jobs near a point.
// @BasePath		/
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)
	if cfg.GinMode == gin.DebugMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	gin.SetMode(cfg.GinMode)

	// Database connection
	conn, err := pgxpool.New(context.Background(), cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	var radiusRepo service.JobRadiusRepository = repo
	if cfg.SearchStrategy == config.StrategyHaversine {
		radiusRepo = repository.NewHaversineRepository(repo)
	}
	log.Info().Str("strategy", cfg.SearchStrategy).Msg("radius search configured")

	jobSearchService := service.NewJobSearchService(radiusRepo)
	jobsRadiusHandler := handler.NewJobsRadiusHandler(jobSearchService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/jobs/radius", jobsRadiusHandler.FindJobsInRadius)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", cfg.ServerAddress).Msg("starting server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
