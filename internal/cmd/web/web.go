// Package web parses web command flags and runs the invitation site.
package web

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/goldencity/invite/internal/platform/cmd"
	"github.com/goldencity/invite/internal/web"
	"github.com/goldencity/invite/internal/wedding/service"
	"github.com/goldencity/invite/internal/wedding/storage/sqlite"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr  string `env:"GOLDENCITY_INVITE_HTTP_ADDR"  envDefault:":8080"`
	DBPath    string `env:"GOLDENCITY_INVITE_DB_PATH"    envDefault:"invite.db"`
	AdminCode string `env:"GOLDENCITY_INVITE_ADMIN_CODE" envDefault:"922610"`
	// JWTKey signs the admin grant cookie. Empty means a random per-process
	// key.
	JWTKey string `env:"GOLDENCITY_INVITE_JWT_KEY"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "web HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.AdminCode, "admin-code", cfg.AdminCode, "code that unlocks the edit flow")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the record store and serves the invitation site until the context
// is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		defer store.Close()

		server, err := web.NewServer(web.Config{
			HTTPAddr:  cfg.HTTPAddr,
			AdminCode: cfg.AdminCode,
			JWTKey:    []byte(cfg.JWTKey),
			Service:   service.New(store),
		})
		if err != nil {
			return fmt.Errorf("build web server: %w", err)
		}

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
