package cmd

import (
	"errors"
	"fmt"
	"os"

	"asset-verifier/core/logger"
	"asset-verifier/feature/assets"
	"asset-verifier/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes. A failed check is distinct from a check that could not run.
const (
	ExitOK          = 0
	ExitFailed      = 1
	ExitCouldNotRun = 2
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-verifier",
	Short: "Native asset verification for over-the-air exports",
	Long: `Asset Verifier checks that every static asset referenced by an export is
either embedded in the native build or shipped in the platform's over-the-air payload.
It runs as a one-shot CLI check or as an HTTP service over an S3 bucket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, assets.ErrOrphanedAssets), errors.Is(err, integrity.ErrPreflightFailed):
		return ExitFailed
	default:
		return ExitCouldNotRun
	}
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console format with debug config for ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
	l, logErr := logger.New(&logger.Config{
		Level:  "debug",
		Format: "console",
	})
	if logErr == nil {
		if ExitCode(err) == ExitFailed {
			l.Error("check failed", zap.Error(err))
		} else {
			l.Error("command failed", zap.Error(err))
		}
		_ = l.Sync()
	} else {
		// Absolute fallback if logger creation fails (rare)
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(ExitCode(err))
}
