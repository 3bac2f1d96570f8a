package brief

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileLoader reads a plain text or markdown brief.
type FileLoader struct{}

func (l *FileLoader) Load(_ context.Context, source string) (*Brief, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read brief %s: %w", source, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("brief %s is empty", source)
	}

	return newBrief(string(data), "", filepath.Base(source)), nil
}
