package commands

import (
	"fmt"
	"log/slog"

	"github.com/haivivi/tonegen/pkg/cli"
	"github.com/haivivi/tonegen/pkg/history"
	"github.com/haivivi/tonegen/pkg/storage"
)

// testStoreOverride replaces the context's storage in tests.
var testStoreOverride storage.FileStore

// openStore builds the FileStore for the context's storage target and
// returns it with the backend kind. A nil context writes relative paths
// under the working directory.
func openStore(ctx *cli.Context) (storage.FileStore, string, error) {
	if testStoreOverride != nil {
		return testStoreOverride, "test", nil
	}

	var sc *cli.StorageConfig
	if ctx != nil {
		sc = ctx.Storage
	}
	if sc != nil {
		if err := sc.Validate(); err != nil {
			return nil, "", err
		}
	}

	kind := sc.KindOrDefault()
	switch kind {
	case cli.StorageS3:
		client, err := storage.NewS3Client(storage.S3Config{
			Region:    sc.Region,
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			PathStyle: sc.PathStyle,
		})
		if err != nil {
			return nil, "", err
		}
		return storage.NewS3(client, sc.Bucket, sc.Prefix), kind, nil
	default:
		dir := "."
		if sc != nil && sc.Dir != "" {
			dir = sc.Dir
		}
		local, err := storage.NewLocal(dir)
		if err != nil {
			return nil, "", fmt.Errorf("open output directory: %w", err)
		}
		return local, kind, nil
	}
}

// openHistory opens the on-disk history database next to the config file.
func openHistory() (*history.Store, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	slog.Debug("opening history", "dir", cfg.HistoryDir())
	return history.OpenBadger(cfg.HistoryDir())
}
