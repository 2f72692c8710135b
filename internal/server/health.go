package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/table"
)

// sourceHealth checks that the configured source file exists.
type sourceHealth struct {
	path string
}

// HealthCheck implements HealthChecker
func (h sourceHealth) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &table.SourceError{Path: h.path, Err: table.ErrSourceNotFound}
		}
		return &table.SourceError{Path: h.path, Err: err}
	}
	if info.IsDir() {
		return &table.SourceError{Path: h.path, Err: fmt.Errorf("source is a directory")}
	}
	return nil
}
