package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a finished URL list out of the input folder so the
// watcher never sees it again
func (p *implProcessor) moveToArchived(ctx context.Context, listPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(listPath))
	p.logger.Info(ctx, "Archiving: %s -> %s", listPath, destPath)

	if err := os.Rename(listPath, destPath); err != nil {
		// If rename fails (cross-device), copy instead
		if err := copyFile(listPath, destPath); err != nil {
			return fmt.Errorf("move to archived: %w", err)
		}
		if err := os.Remove(listPath); err != nil {
			return fmt.Errorf("remove original: %w", err)
		}
	}

	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
