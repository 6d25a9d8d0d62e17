package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes one file per request/response pair into a
// directory, it is only meant for local debugging (--verbose).
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("clear %s: %w", dir, err)
	}
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("create %s: %w", dir, err)
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
