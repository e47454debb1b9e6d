package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// backupOriginal moves src into a backup/ directory next to it, resolving
// name collisions with the same numeric-suffix scheme used for outputs.
// Returns the final backup path.
func backupOriginal(src string) (string, error) {
	dir := filepath.Join(filepath.Dir(src), "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(src)
	target := filepath.Join(dir, base)

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			break
		}
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	if err := os.Rename(src, target); err != nil {
		return "", err
	}
	return target, nil
}
