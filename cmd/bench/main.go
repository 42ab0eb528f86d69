// README: Smoke and load runner against a live smartdrive-api; prints one line per case.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"smartdrive/internal/config"
)

var errBenchFailed = errors.New("bench: failing cases")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

// newRootCmd binds flags whose defaults come from SMARTDRIVE_BENCH_* and the service's
// own storage variables, so one .env drives both.
func newRootCmd() *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Run smoke and load cases against a running smartdrive-api",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			results := NewRunner(cfg).RunAll(ctx)
			return summarize(cmd.OutOrStdout(), results, cfg.Strict)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "base-url", config.String("SMARTDRIVE_BENCH_BASE_URL", "http://localhost:8000"), "API base URL")
	f.StringVar(&cfg.DSN, "dsn", config.String("SMARTDRIVE_DB_DSN", ""), "Postgres DSN (checks skipped when empty)")
	f.StringVar(&cfg.RedisAddr, "redis", config.String("SMARTDRIVE_REDIS_ADDR", ""), "Redis address (checks skipped when empty)")
	f.StringVar(&cfg.MigrationPath, "migration", config.String("SMARTDRIVE_BENCH_MIGRATION", "migrations/0001_listings.sql"), "migration SQL path")
	f.BoolVar(&cfg.ApplyMigration, "apply-migration", config.Bool("SMARTDRIVE_BENCH_APPLY_MIGRATION", false), "apply the migration before storage checks")
	f.BoolVar(&cfg.Strict, "strict", config.Bool("SMARTDRIVE_BENCH_STRICT", false), "treat pending cases as failures")
	f.DurationVar(&cfg.Timeout, "timeout", config.Duration("SMARTDRIVE_BENCH_TIMEOUT", 3*time.Minute), "total timeout")
	f.IntVar(&cfg.Concurrency, "concurrency", config.Int("SMARTDRIVE_BENCH_CONCURRENCY", 20), "workers for load cases")
	f.DurationVar(&cfg.Duration, "duration", config.Duration("SMARTDRIVE_BENCH_DURATION", 10*time.Second), "duration of load cases")
	return cmd
}

// summarize prints status counts and returns errBenchFailed when any case failed,
// or when strict and a case is still pending.
func summarize(out io.Writer, results []Result, strict bool) error {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	fmt.Fprintln(out, "\n== Summary ==")
	fmt.Fprintf(out, "PASS=%d FAIL=%d PENDING=%d SKIP=%d\n",
		counts[statusPass], counts[statusFail], counts[statusPending], counts[statusSkip])

	if counts[statusFail] > 0 || (strict && counts[statusPending] > 0) {
		return errBenchFailed
	}
	return nil
}
