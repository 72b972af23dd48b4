package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signalboard/internal/cli/config"
	"github.com/leapstack-labs/signalboard/internal/cli/output"
	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/sampledata"
	"github.com/leapstack-labs/signalboard/internal/tabcache"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Loader   *loader.Loader
	Renderer *output.Renderer
	// DataDir is the directory resources are read from. It is empty for the
	// embedded sample data and for HTTP sources.
	DataDir string
}

// NewCommandContext creates a CommandContext from the config and logger
// stored in the command's context.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	source, dir, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("using data source", "source", source.String())

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Loader:   loader.New(source, logger),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		DataDir:  dir,
	}, nil
}

// NewController creates a controller for one dashboard session, with its own
// tab cache, painting into page.
func (c *CommandContext) NewController(page controller.Painter) (*controller.Controller, *tabcache.Cache) {
	cache := tabcache.New(c.Loader)
	return controller.New(controller.Options{
		Loader:  c.Loader,
		Cache:   cache,
		Painter: page,
		Logger:  c.Logger,
	}), cache
}

// newSource picks where resources are loaded from:
//  1. data_url, over HTTP
//  2. an explicitly configured data_dir, which must exist
//  3. ./data when present
//  4. the embedded sample data
func newSource(cfg *config.Config) (loader.Source, string, error) {
	if cfg.DataURL != "" {
		source, err := loader.HTTPSource(cfg.DataURL, &http.Client{Timeout: cfg.DataTimeout})
		if err != nil {
			return nil, "", err
		}
		return source, "", nil
	}

	dir := cfg.DataDir
	if dir == "" {
		dir = config.DefaultDataDir
	}
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			abs = dir
		}
		return loader.DirSource(abs), abs, nil
	case cfg.DataDirExplicit():
		switch {
		case err == nil:
			return nil, "", fmt.Errorf("data directory is not a directory: %s", dir)
		case errors.Is(err, fs.ErrNotExist):
			return nil, "", fmt.Errorf("data directory does not exist: %s\nHint: create it or use --data-dir to point at a directory with config.json", dir)
		default:
			return nil, "", fmt.Errorf("data directory: %w", err)
		}
	default:
		return loader.FSSource(sampledata.FS(), "embedded sample data"), "", nil
	}
}
