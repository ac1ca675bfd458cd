package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const lineTimeFormat = "2006-01-02 15:04:05"

// FileSink appends one line per entry: "[2024-01-01 10:00:00] [INFO] message".
type FileSink struct {
	file *os.File
	sync.Mutex
}

func OpenFile(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal file: %w", err)
	}

	return &FileSink{
		file: file,
	}, nil
}

func FormatLine(entry Entry) string {
	return fmt.Sprintf("[%s] [%s] %s\n", entry.Time.Format(lineTimeFormat), entry.Level, entry.Message)
}

func (s *FileSink) Append(ctx context.Context, entry Entry) error {
	s.Lock()
	defer s.Unlock()

	_, err := s.file.WriteString(FormatLine(entry))

	return err
}

func (s *FileSink) Close() error {
	s.Lock()
	defer s.Unlock()

	return s.file.Close()
}
