package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/config"
	"github.com/sedes-ce/sedesgo/internal/database"
	"github.com/sedes-ce/sedesgo/internal/export/sheets"
	"github.com/sedes-ce/sedesgo/internal/handlers"
	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/pdfextract"
	"github.com/sedes-ce/sedesgo/internal/photos"
	"github.com/sedes-ce/sedesgo/internal/relatorio"
	"github.com/sedes-ce/sedesgo/internal/scheduler"
	"github.com/sedes-ce/sedesgo/internal/storage/localstore"
	"github.com/sedes-ce/sedesgo/internal/storage/remote"
	"github.com/sedes-ce/sedesgo/internal/websocket"
	"github.com/sedes-ce/sedesgo/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	// 2. Connect to the remote store (embedded postgres when unconfigured)
	db, err := database.Connect(cfg.Database, logger.Named(log, "database"))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// 3. Synchronize schema
	err = db.AutoMigrate(
		&models.Usuario{},
		&models.Unidade{},
		&models.Beneficiario{},
		&models.Atendimento{},
		&models.Presenca{},
		&models.RelatorioMensal{},
	)
	if err != nil {
		log.Warn("migration warning", zap.Error(err))
	}

	// 4. Local fallback log
	local, err := localstore.NewFileStore(cfg.LocalStore.Dir)
	if err != nil {
		log.Fatal("failed to open local store", zap.Error(err))
	}

	// 5. Core services
	remoteStore := remote.NewStore(db)
	svc := relatorio.NewService(remoteStore, local, logger.Named(log, "relatorio"))
	extractor := pdfextract.NewExtractor(logger.Named(log, "pdfextract"))
	uploader := photos.NewUploader(cfg.Storage, logger.Named(log, "photos"))

	hub := websocket.NewHub(logger.Named(log, "websocket"))
	go hub.Run()

	// 6. Monthly consolidation job
	exporter, err := sheets.NewExporter(context.Background(), cfg.Sheets, logger.Named(log, "sheets"))
	if err != nil {
		log.Warn("sheets export disabled", zap.Error(err))
	}
	sched := scheduler.NewScheduler(cfg.Scheduler, svc, remoteStore, exporter, logger.Named(log, "scheduler"))
	sched.Start()

	// 7. HTTP router
	router := handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		DB:        db,
		Service:   svc,
		Remote:    remoteStore,
		Extractor: extractor,
		Uploader:  uploader,
		Hub:       hub,
		Logger:    logger.Named(log, "http"),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 8. Start server with graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sig := <-shutdown
	log.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn("http server shutdown error", zap.Error(err))
	}

	sched.Stop()

	if err := db.Close(); err != nil {
		log.Warn("database close error", zap.Error(err))
	}

	log.Info("shutdown complete")
}
