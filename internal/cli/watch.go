package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/filter"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	MetricsAddr string

	// IDGenerator overrides the cycle ID generator (for testing).
	IDGenerator dispatch.IDGenerator
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch [dataset]",
		Short: "Dispatch input events read from stdin",
		Long: `Run the single-writer dispatch loop over newline-delimited JSON input
events read from stdin. Each event is a complete input snapshot:

  {"restaurants":["A"],"protein_range":[0,50],"carbs_range":[0,100],
   "fat_range":[0,40],"calories_range":[0,900],"search_text":"chicken"}

One report is printed per event, listing the inputs that changed and the
recomputed artifacts. Malformed lines are logged and skipped. The loop
stops at end of input or on SIGINT/SIGTERM.

Examples:
  tail -f events.ndjson | nutridash watch ./menu.csv
  nutridash watch ./menu.db --format json --metrics-addr :9090 < events.ndjson`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd, firstArg(args))
		},
	}

	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command, path string) error {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	f := newFormatter(opts.RootOptions, cmd)
	s, err := openSession(parentCtx, opts.RootOptions, f, path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	reg := prometheus.NewRegistry()
	ids := opts.IDGenerator
	if ids == nil {
		ids = dispatch.UUIDv7Generator{}
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	sink := func(c *dispatch.Cycle, err error) {
		report := newCycleReport(c, err)
		if opts.Format == "json" {
			if encErr := enc.Encode(report); encErr != nil {
				slog.Error("write report", "error", encErr)
			}
			return
		}
		if werr := report.writeText(out); werr != nil {
			slog.Error("write report", "error", werr)
		}
	}

	d, err := dispatch.New(s.Dataset, s.Bindings,
		dispatch.WithIDGenerator(ids),
		dispatch.WithMetrics(dispatch.NewMetrics(reg)),
		dispatch.WithSink(sink),
	)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid bindings", err)
	}

	// The reader is not part of the group: a read from a terminal cannot be
	// interrupted, so shutdown must not wait for it.
	readDone := make(chan error, 1)
	go func() {
		readDone <- readEvents(cmd.InOrStdin(), d)
	}()

	g, gctx := errgroup.WithContext(ctx)

	var srv *http.Server
	if opts.MetricsAddr != "" {
		srv = &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("serving metrics", "addr", opts.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			if srv != nil {
				shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				_ = srv.Shutdown(shutdownCtx)
			}
		}()
		return d.Run(gctx)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "watch failed", err)
	}
	if err == nil {
		// Run only returns nil once the reader has closed the queue.
		if readErr := <-readDone; readErr != nil {
			return WrapExitError(ExitCommandError, "failed to read events", readErr)
		}
	}

	slog.Info("watch stopped")
	return nil
}

// readEvents decodes one filter.Input per line and enqueues it. Blank lines
// are ignored and malformed lines are logged and skipped. The queue is
// closed when input ends.
func readEvents(r io.Reader, d *dispatch.Dispatcher) error {
	defer d.Stop()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var in filter.Input
		if err := json.Unmarshal([]byte(text), &in); err != nil {
			slog.Warn("skipping malformed event", "line", line, "error", err)
			continue
		}
		if !d.Enqueue(in) {
			return nil
		}
	}
	return scanner.Err()
}
