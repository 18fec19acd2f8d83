package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Output writes generations.csv into a run directory. A nil *Output
// discards everything.
type Output struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewOutput creates dir and opens generations.csv inside it. It returns nil
// when dir is empty.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	return &Output{dir: dir, file: f}, nil
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Write appends records, emitting the CSV header on the first call.
func (o *Output) Write(records ...GenerationStats) error {
	if o == nil || len(records) == 0 {
		return nil
	}
	if !o.headerWritten {
		if err := gocsv.Marshal(records, o.file); err != nil {
			return fmt.Errorf("writing generations: %w", err)
		}
		o.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.file); err != nil {
		return fmt.Errorf("writing generations: %w", err)
	}
	return nil
}

// Close flushes and closes the CSV file.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	return o.file.Close()
}
