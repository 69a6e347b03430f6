// Command toolserver wires the C1-C6 infrastructure (errtax, ratelimit,
// resilience, cache, toolshell, metricshttp) into a running process and
// exposes it to a host over the stdio tool protocol (package toolproto),
// per spec.md §6.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolguard/config"
	"github.com/jonwraymond/toolguard/errtax"
	"github.com/jonwraymond/toolguard/obslog"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolserver",
		Short: "Analytical tool server: JSON-RPC-over-stdio transport guarded by shared rate-limit/resilience/cache infrastructure",
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPreloadCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the toolserver version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

// newPreloadCmd runs the cache engine's durable preload against the
// configured CACHE_DIR and prints "preload complete" on success,
// without starting the stdio server. Useful for a warm-restart health
// check before a host spawns the real process.
func newPreloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preload",
		Short: "Preload persisted cache entries from CACHE_DIR and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			bootLog := obslog.NewLogger("INFO")
			cfg, err := config.Load(bootLog)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cache.Preload(ctx); err != nil {
				return errtax.New(errtax.ConfigMissing, "cache preload failed", map[string]any{
					"error": err.Error(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "preload complete")
			return nil
		},
	}
}

// newServeCmd builds and runs the full process: reads tool requests
// from stdin and writes responses to stdout (per spec.md §6), while
// optionally serving the read-only metrics & health surface (§4.6) on
// loopback.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the tool server, reading requests from stdin and writing responses to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bootLog := obslog.NewLogger("INFO")
			cfg, err := config.Load(bootLog)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if cfg.EnableCachePersistence {
				if err := a.cache.Preload(ctx); err != nil {
					a.logger.Warn(ctx, "cache preload failed", obslog.Field{Key: "error", Value: err.Error()})
				}
			}

			registerBuiltinTools(a)

			errCh := make(chan error, 2)
			if a.metrics != nil {
				go func() { errCh <- a.metrics.ListenAndServe(ctx) }()
			}
			go func() { errCh <- a.server.Serve(ctx) }()

			select {
			case <-ctx.Done():
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
}

// exitCodeFor maps an error returned by a subcommand's RunE to a process
// exit code. Per spec.md §6, any error that aborts startup or the serve
// loop itself (Configuration error, schema mismatch, fatal dependency,
// transport desync) is exit code 1; per-call tool errors never reach
// here, since the registry and server handle those without returning.
func exitCodeFor(err error) int {
	return 1
}
