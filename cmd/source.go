package cmd

import (
	"context"
	"fmt"
	"os"

	"asset-verifier/core/config"
	"asset-verifier/core/storage"
	"asset-verifier/feature/assets"

	"go.uber.org/zap"
)

// newSource builds the artifact source selected by kind.
// Bucket sources check that the configured bucket exists.
func newSource(ctx context.Context, cfg *config.Config, kind string, logg *zap.Logger) (assets.Source, error) {
	switch kind {
	case assets.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("bucket %s does not exist", cfg.Storage.Bucket)
		}
		logg.Debug("Reading artifacts from bucket", zap.String("bucket", cfg.Storage.Bucket))
		return assets.NewBucketSource(client, cfg.Storage.Bucket), nil
	default:
		return assets.NewLocalSource(nil), nil
	}
}

// projectRoot returns the root relative paths resolve against.
// Local sources default to the working directory; bucket sources to the bucket root.
func projectRoot(args []string, kind string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if kind == assets.SourceBucket {
		return "", nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}
