// launching the server, storage pool, migrations
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/comment-board/config"
	"github.com/ds124wfegd/comment-board/internal/database"
	commentPostgres "github.com/ds124wfegd/comment-board/internal/database/postgres"
	commentRedis "github.com/ds124wfegd/comment-board/internal/database/redis"
	"github.com/ds124wfegd/comment-board/internal/service"
	"github.com/ds124wfegd/comment-board/internal/transport"
	"github.com/ds124wfegd/comment-board/pkg/postgres"
	"github.com/ds124wfegd/comment-board/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0),
	}}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// openRepository opens the configured store and returns the repository over it
// together with the function that releases the underlying pool.
func openRepository(ctx context.Context, cfg *config.Config) (database.CommentRepository, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return commentRedis.NewCommentRepository(client), client.Close, nil
	default:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return commentPostgres.NewCommentRepository(db), db.Close, nil
	}
}

func NewServer(cfg *config.Config) {
	ctx := context.Background()

	// Initialize storage
	repo, closeStorage, err := openRepository(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logrus.Errorf("error occured on closing storage: %s", err.Error())
		}
		logrus.Info("Storage pool closed")
	}()

	commentService := service.NewCommentService(repo)
	commentHandler := transport.NewCommentHandler(commentService)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := newHTTPServer(cfg, transport.InitRoutes(commentHandler))
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    cfg.GetServerAddress(),
		"storage": cfg.Storage.Driver,
		"version": cfg.Server.AppVersion,
	}).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
	case err := <-serverErr:
		logrus.Errorf("error occured while running http server: %s", err.Error())
	}

	logrus.Print("App Shutting Down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
