package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/davronbekov/optika-orders/internal/config"
	"github.com/davronbekov/optika-orders/internal/handlers"
	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/csrf"
	"github.com/davronbekov/optika-orders/internal/middleware/loggingmw"
	"github.com/davronbekov/optika-orders/internal/render"
	"github.com/davronbekov/optika-orders/internal/telegram"
	httpserver "github.com/davronbekov/optika-orders/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	secret := []byte(configuration.SESSION_SECRET)
	if len(secret) == 0 {
		// sessions do not survive a restart without a fixed secret
		logger.Warn("SESSION_SECRET is empty, generating a throwaway key")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("generate session key: %v", err)
		}
	}
	store := sessions.NewCookieStore(secret)

	renderer := render.New()
	if err := renderer.Load(configuration.TEMPLATES_DIR); err != nil {
		log.Fatalf("load templates: %v", err)
	}

	var sender telegram.DocumentSender
	if configuration.TELEGRAM_BOT_TOKEN != "" {
		bot, err := telegram.New(configuration.TELEGRAM_BOT_TOKEN)
		if err != nil {
			logger.Warn("telegram bot unavailable", "error", err)
		} else {
			sender = bot
		}
	}

	if err := os.MkdirAll(configuration.UPLOAD_DIR, 0o755); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(logger),
		session.Middleware(store),
		csrf.Middleware(csrf.DefaultConfig()),
	)

	deps := httpserver.Deps{
		DB:           db,
		Auth:         &handlers.AuthHandler{DB: db},
		Pages:        &handlers.PageHandler{DB: db},
		Catalog:      &handlers.CatalogHandler{DB: db},
		Profile:      &handlers.ProfileHandler{DB: db},
		Archive:      &handlers.ArchiveHandler{DB: db},
		AdminArchive: &handlers.AdminArchiveHandler{DB: db, Sender: sender},
		Feedback:     &handlers.FeedbackHandler{DB: db},
		Users:        &handlers.UserAdminHandler{DB: db},
		Chats:        &handlers.ChatAdminHandler{DB: db},
		Uploads:      &handlers.UploadHandler{Dir: configuration.UPLOAD_DIR},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	go func() {
		<-quit
		logger.Error("forced exit")
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
