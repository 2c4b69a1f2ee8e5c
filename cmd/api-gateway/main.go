package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/legal-intake-api/api/swagger"
	"github.com/noah-isme/legal-intake-api/internal/handler"
	"github.com/noah-isme/legal-intake-api/internal/middleware"
	"github.com/noah-isme/legal-intake-api/internal/repository"
	"github.com/noah-isme/legal-intake-api/internal/service"
	"github.com/noah-isme/legal-intake-api/pkg/cache"
	"github.com/noah-isme/legal-intake-api/pkg/config"
	"github.com/noah-isme/legal-intake-api/pkg/database"
	"github.com/noah-isme/legal-intake-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/legal-intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/legal-intake-api/pkg/middleware/requestid"
)

// @title Legal Intake API
// @version 1.0.0
// @description Client intake, issue taxonomy, document-generation mapping and case workflow.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Taxonomy.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, taxonomy cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Taxonomy.CacheTTL, logr, cfg.Taxonomy.CacheEnabled)

	tx := database.NewTxManager(db)
	validate := service.NewValidator()

	taxonomyRepo := repository.NewTaxonomyRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	taxonomySvc := service.NewTaxonomyService(taxonomyRepo, tx, cacheSvc, cfg.Taxonomy.CacheTTL, validate, logr)
	categoryValidator := service.NewCategoryValidator(taxonomyRepo)
	caseSvc := service.NewCaseService(tx, caseRepo, activityRepo, metrics, validate, logr)
	intakeSvc := service.NewIntakeService(service.IntakeServiceDeps{
		Tx:            tx,
		Intakes:       intakeRepo,
		Issues:        issueRepo,
		Cases:         caseRepo,
		Activities:    activityRepo,
		Taxonomy:      taxonomySvc,
		Categories:    categoryValidator,
		Metrics:       metrics,
		DefaultSchema: cfg.DocGen.DefaultSchemaVersion,
	}, validate, logr)
	docGenSvc := service.NewDocGenService(intakeRepo, issueRepo, taxonomySvc, caseSvc, metrics, logr)
	activitySvc := service.NewActivityService(activityRepo, caseSvc)
	exportSvc := service.NewActivityExportService(activityRepo, caseSvc, service.ActivityExportConfig{
		Enabled: cfg.Export.Enabled,
		MaxRows: cfg.Export.MaxRows,
	}, logr)
	noteSvc := service.NewNoteService(tx, noteRepo, caseRepo, activityRepo, validate, logr)
	actorSvc := service.NewActorService(service.ActorConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics"))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Taxonomy: handler.NewTaxonomyHandler(taxonomySvc),
		Intake:   handler.NewIntakeHandler(intakeSvc),
		DocGen:   handler.NewDocGenHandler(docGenSvc),
		Case:     handler.NewCaseHandler(caseSvc),
		Activity: handler.NewActivityHandler(activitySvc, exportSvc),
		Note:     handler.NewNoteHandler(noteSvc),
		Metrics:  handler.NewMetricsHandler(metrics, db),
	}, middleware.JWT(actorSvc))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "docgen_schema", cfg.DocGen.DefaultSchemaVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
