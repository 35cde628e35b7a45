package handlers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// safeDeleteUpload removes a stored upload by its path relative to the public
// root (config.AppEnv.PublicDir at runtime). Paths outside uploads/ or
// escaping the root are refused; a missing file is not an error so cleanup
// stays idempotent.
func safeDeleteUpload(publicRoot, relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	cleanBase := filepath.Clean(publicRoot)
	target := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(cleanRel)))
	if target != cleanBase && !strings.HasPrefix(target, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside public root: %s", relPath)
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
