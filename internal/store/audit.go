package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// newAuditLogger opens the append-only audit log and returns a logrus
// logger dedicated to it. The logger is owned by the Store that created
// it; there is no process-wide audit singleton.
func newAuditLogger(path string) (*logrus.Logger, io.Closer, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating audit log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening audit log: %w", err)
	}

	lg := logrus.New()
	lg.SetOutput(f)
	lg.SetLevel(logrus.InfoLevel)
	lg.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return lg, f, nil
}
