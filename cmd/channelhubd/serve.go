package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"channelhub/internal/config"
	"channelhub/internal/hub"
	"channelhub/internal/httpapi"
	"channelhub/internal/registry"
)

type serveOpts struct {
	configPath     string
	addr           string
	definitionsDir string
	strictIDs      bool
	maxBodyBytes   int64
	cors           bool
	corsOrigins    string
}

func newServeCmd(g *globalOpts) *cobra.Command {
	o := &serveOpts{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Example: "  channelhubd serve --config channelhub.yaml\n" +
			"  CHANNELHUB_ADDR=:9090 channelhubd serve --definitions-dir ./modules",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			logger, err := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, logger)
		},
	}
	o.bindFlags(cmd.Flags())
	return cmd
}

func (o *serveOpts) bindFlags(f *pflag.FlagSet) {
	f.StringVarP(&o.configPath, "config", "c", envStr("CHANNELHUB_CONFIG", ""), "Config file (.yaml, .yml, .json, .toml)")
	f.StringVar(&o.addr, "addr", envStr("CHANNELHUB_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	f.StringVar(&o.definitionsDir, "definitions-dir", "", "Directory of module definition files")
	f.BoolVar(&o.strictIDs, "strict-ids", false, "Reject duplicate channel/receiver ids instead of first-match")
	f.Int64Var(&o.maxBodyBytes, "max-body-bytes", 0, "Maximum JSON request body size (0 = 1 MiB)")
	f.BoolVar(&o.cors, "cors", false, "Enable CORS")
	f.StringVar(&o.corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins (default *)")
}

// resolveConfig layers the config file, then explicitly set flags.
func (o *serveOpts) resolveConfig(cmd *cobra.Command, g *globalOpts) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	f := cmd.Flags()
	if cfg.Addr == "" || f.Changed("addr") {
		cfg.Addr = o.addr
	}
	if f.Changed("definitions-dir") {
		cfg.DefinitionsDir = o.definitionsDir
	}
	if f.Changed("strict-ids") {
		cfg.StrictIDs = o.strictIDs
	}
	if f.Changed("max-body-bytes") {
		cfg.MaxBodyBytes = o.maxBodyBytes
	}
	if f.Changed("cors") {
		cfg.CORSEnabled = o.cors
	}
	if origins := splitCSV(o.corsOrigins); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	cfg.LogLevel = firstNonEmpty(g.logLevel, cfg.LogLevel)
	cfg.LogFormat = firstNonEmpty(g.logFormat, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildServer wires definitions, the hub and the HTTP layer. Broker events
// are counted on reg and logged at debug level.
func buildServer(cfg config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*hub.Hub, http.Handler, error) {
	defs, err := registry.Resolve(cfg.Definitions, cfg.DefinitionsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("definitions: %w", err)
	}
	metrics, err := hub.NewMetricsPublisher(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}
	h := hub.New(hub.HubConfig{
		Definitions: defs,
		StrictIDs:   cfg.StrictIDs,
		Publisher:   hub.MultiPublisher{metrics, hub.NewLogPublisher(logger)},
		Logger:      &logger,
	})
	for _, ic := range cfg.Instances {
		if _, err := h.CreateInstanceWithID(ic.ID, ic.Kind, ic.Name); err != nil {
			h.Close()
			return nil, nil, fmt.Errorf("startup instance %q: %w", firstNonEmpty(ic.ID, ic.Kind), err)
		}
	}

	httpapi.SetLogger(logger)
	if cfg.LogLevel != "" && cfg.LogLevel != "warn" {
		httpapi.SetDefaultLogLevel(cfg.LogLevel)
	}
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	return h, httpapi.NewMux(h), nil
}

func runServer(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	h, mux, err := buildServer(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer h.Close()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Int("definitions", len(h.Definitions())).
			Int("instances", len(h.ListInstances())).
			Msg("channelhubd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
