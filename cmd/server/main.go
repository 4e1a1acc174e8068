package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-lab-site/internal/config"
	"github.com/jrsteele09/go-lab-site/internal/logging"
	"github.com/jrsteele09/go-lab-site/internal/store"
	"github.com/jrsteele09/go-lab-site/recaptcha"
	"github.com/jrsteele09/go-lab-site/server"
	"github.com/jrsteele09/go-lab-site/storage"
	"github.com/jrsteele09/go-lab-site/token"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	format := "json"
	if !c.IsProduction() {
		format = "console"
	}
	logging.Setup(c.GetLogLevel(), format)
	displayAppname(c.GetAppName())

	ctx := context.Background()

	st, err := openStore(ctx, c.GetDBPath())
	if err != nil {
		return err
	}
	defer st.Close()

	objects, err := newObjectStore(ctx, c)
	if err != nil {
		return err
	}

	captcha, err := newCaptchaVerifier(c)
	if err != nil {
		return err
	}

	authority, err := token.NewAuthority(c)
	if err != nil {
		return fmt.Errorf("token.NewAuthority: %w", err)
	}
	if c.GetAdminSessionSecret() == "" {
		log.Warn().Msg("ADMIN_SESSION_SECRET is not set; sessions are signed with ADMIN_PASSWORD")
	}

	handler, err := server.New(c, server.Deps{
		Repo:    st,
		Health:  st,
		Objects: objects,
		Captcha: captcha,
		Auth:    authority,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(httpServer) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func openStore(ctx context.Context, dbPath string) (*store.SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	log.Info().Str("path", dbPath).Msg("Database ready")
	return st, nil
}

func newObjectStore(ctx context.Context, c config.Config) (storage.ObjectStore, error) {
	switch c.GetStorageDriver() {
	case config.StorageDriverS3:
		log.Info().Str("bucket", c.GetS3Bucket()).Str("region", c.GetS3Region()).Msg("Using S3 object storage")
		return storage.NewS3Store(ctx, c.GetS3Bucket(), c.GetS3Region(), c.GetS3Endpoint())
	case config.StorageDriverLocal:
		log.Info().Str("dir", c.GetStorageDir()).Msg("Using local object storage")
		return storage.NewLocalStore(c.GetStorageDir(), c.GetStoragePublicURL())
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", c.GetStorageDriver())
	}
}

// newCaptchaVerifier refuses to run production without a reCAPTCHA secret
func newCaptchaVerifier(c config.Config) (recaptcha.Verifier, error) {
	secret := c.GetReCaptchaSecret()
	if secret == "" {
		if c.IsProduction() {
			return nil, errors.New("RECAPTCHA_SECRET is required in production")
		}
		log.Warn().Msg("RECAPTCHA_SECRET is not set; captcha checks are disabled")
		return recaptcha.Disabled{}, nil
	}
	return recaptcha.NewClient(secret, c.GetReCaptchaMinScore())
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
