// Command declination converts batches of location/date records into
// magnetic-declination reports by querying the NOAA geomagnetic field
// calculator once per data line.
//
// Usage:
//
//	declination -i waypoints.txt -o reports.txt
//	cat waypoints.txt | declination --no-header
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexKleider/declination/internal/adapter/geomag"
	httpadapter "github.com/alexKleider/declination/internal/adapter/http"
	"github.com/alexKleider/declination/internal/config"
	"github.com/alexKleider/declination/internal/observability"
	"github.com/alexKleider/declination/internal/pipeline"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "declination:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		infile      string
		outfile     string
		noHeader    bool
		failFast    bool
		endpoint    string
		timeout     time.Duration
		reqRate     float64
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:     "declination",
		Short:   "Convert location/date records into magnetic-declination reports",
		Long: `Reads whitespace-separated input lines of the form

  YYYY MM DD LAT_DEG LAT_MIN LON_DEG LON_MIN GRID_OFFSET

(latitude North, longitude West), queries the NOAA geomagnetic field
calculator for each, and writes one formatted report line per input line.
Comment (#) and blank lines are echoed; bad lines are reported inline and
never stop the batch unless --fail-fast is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override environment defaults.
			if cmd.Flags().Changed("endpoint") {
				cfg.EndpointURL = endpoint
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			if cmd.Flags().Changed("rate") {
				cfg.RequestRate = reqRate
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			cfg.Infile = infile
			cfg.Outfile = outfile
			cfg.NoHeader = noHeader
			cfg.FailFast = failFast

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&infile, "infile", "i", "", "input file (default stdin)")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "suppress the column-label header line")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop the batch on the first lookup or decode failure")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "calculator endpoint URL (overrides GEOMAG_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout (overrides GEOMAG_TIMEOUT)")
	cmd.Flags().Float64Var(&reqRate, "rate", 0, "max calculator requests per second, 0 = unlimited (overrides GEOMAG_RATE_LIMIT)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /healthz, /readyz, /metrics on this address during the run")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := geomag.NewClient(cfg, metrics, logger)
	p := pipeline.New(client, logger, metrics, pipeline.Options{
		Header:   !cfg.NoHeader,
		FailFast: cfg.FailFast,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Resource acquisition at the I/O boundary is the only fatal failure
	// class: a batch with nowhere to read from or write to cannot start.
	in, closeIn, err := openInput(cfg.Infile)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.Outfile)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		srv := httpadapter.NewServer(cfg.MetricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("ops server shutdown error", "error", err)
			}
		}()
	}

	if err := p.Run(ctx, in, out); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, f.Close, nil
}
