package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"
)

const devWatcherInterval = 500 * time.Millisecond

// startDevWatcher polls the on-disk templates and static assets and notifies
// every reload subscriber when their fingerprint changes.
func startDevWatcher(notifier *ReloadNotifier, roots ...string) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// final notification so open reload streams exit
		defer notifier.Notify()

		lastFingerprint, err := fingerprint(roots)
		if err != nil {
			slog.Error("Dev watcher failed to read directories", slog.Any("roots", roots), slog.Any("err", err))
		}

		ticker := time.NewTicker(devWatcherInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fp, err := fingerprint(roots)
				if err != nil {
					slog.Error("Dev watcher failed to scan directories", slog.Any("roots", roots), slog.Any("err", err))
					continue
				}

				if fp != lastFingerprint {
					lastFingerprint = fp
					slog.Debug("Dev watcher detected change, reloading")
					notifier.Notify()
				}
			}
		}
	}()

	return cancel
}

// fingerprint hashes path, size and modification time of every file below roots.
func fingerprint(roots []string) (string, error) {
	hasher := sha1.New()

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			if _, err = fmt.Fprintf(hasher, "%s:%d:%d;", path, info.ModTime().UnixNano(), info.Size()); err != nil {
				return err
			}

			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to walk %q: %w", root, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
