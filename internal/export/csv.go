package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
)

// WriteCSV writes one CSV file per table into dir, creating it if needed.
// It returns the paths of the written files in table order.
func WriteCSV(ds *pipeline.Dataset, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	var paths []string
	for _, t := range Tables(ds) {
		path := filepath.Join(dir, t.File)
		if err := writeCSVFile(path, t); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("writing %s header: %w", t.Name, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing %s rows: %w", t.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
