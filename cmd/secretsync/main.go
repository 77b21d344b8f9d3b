// Command secretsync downloads secrets tagged for export in AWS
// Secrets Manager and applies them as Kubernetes Secrets. It is meant
// to run as a Kubernetes CronJob; every run re-derives the full desired
// state from the current store inventory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/secretsync/internal/config"
	"github.com/systmms/secretsync/internal/kube"
	"github.com/systmms/secretsync/internal/logging"
	"github.com/systmms/secretsync/internal/metrics"
	"github.com/systmms/secretsync/internal/store"
	"github.com/systmms/secretsync/internal/sync"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "secretsync",
		Short: "Sync tagged AWS Secrets Manager secrets into Kubernetes",
		Long: `secretsync discovers secrets in AWS Secrets Manager carrying the
configured routing tags and server-side-applies them as Kubernetes
Secrets into one or more namespaces.

The three tag keys drive the pipeline: the secret-name tag names the
destination Secret, the namespace tag lists destination namespaces
(space separated), and the optional filename tag collapses the payload
into a single file-style blob under that key.

A run exits non-zero only when discovery itself fails. Per-secret and
per-namespace failures are logged and the run continues; inspect the
logs, not the exit code, for partial failures.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)

			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runSync(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "secretsync.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&cfg.NamespaceTag, "namespace-tag", "", "Key of the tag listing destination namespaces")
	rootCmd.Flags().StringVar(&cfg.SecretNameTag, "secret-name-tag", "", "Key of the tag naming the destination secret")
	rootCmd.Flags().StringVar(&cfg.FilenameTag, "filename-tag", "", "Key of the tag selecting file-secret mode")

	return rootCmd.Execute()
}

func runSync(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	logger := cfg.Logger

	storeClient, err := store.New(ctx)
	if err != nil {
		return err
	}

	kubeClient, err := kube.New()
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	start := time.Now()

	summary, err := sync.New(storeClient, kubeClient, cfg).Run(ctx)
	if err != nil {
		return err
	}

	recorder.Record(summary, time.Since(start))
	if gateway := os.Getenv("SECRETSYNC_PUSHGATEWAY"); gateway != "" {
		if pushErr := recorder.Push(gateway); pushErr != nil {
			logger.Warn("Failed to push metrics to %s: %v", gateway, pushErr)
		}
	}

	if summary.Failed > 0 {
		logger.Warn("Run completed with failures: %d of %d secrets synced (%d applies ok, %d failed)",
			summary.Synced, summary.Discovered, summary.AppliesOK, summary.AppliesFailed)
	} else {
		logger.Info("Run completed: %d of %d secrets synced (%d applies)",
			summary.Synced, summary.Discovered, summary.AppliesOK)
	}

	return nil
}
