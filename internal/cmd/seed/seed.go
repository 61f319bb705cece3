// Package seed parses seed command flags and writes the starter wedding
// record into the store.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/goldencity/invite/internal/platform/cmd"
	"github.com/goldencity/invite/internal/wedding"
	"github.com/goldencity/invite/internal/wedding/storage"
	"github.com/goldencity/invite/internal/wedding/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"GOLDENCITY_INVITE_DB_PATH" envDefault:"invite.db"`
	// Force overwrites an existing record with the starter defaults.
	Force bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database path")
	fs.BoolVar(&cfg.Force, "force", false, "overwrite an existing record with the defaults")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the record store with the default wedding details. An existing
// record is left untouched unless Force is set.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		defer store.Close()

		_, err = store.Get(ctx)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Empty store, seed it.
		case err != nil:
			return fmt.Errorf("read record: %w", err)
		case !cfg.Force:
			fmt.Fprintln(out, "record already exists, use -force to overwrite")
			return nil
		}

		if err := store.Put(ctx, wedding.Defaults()); err != nil {
			return fmt.Errorf("write defaults: %w", err)
		}
		fmt.Fprintln(out, "seeded default wedding details")
		return nil
	})
}
