package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c360studio/relgraph/graph"
	"github.com/c360studio/relgraph/schema"
)

// WriteFiles serializes the graph into one file per requested format under
// dir, named graph<ext>. A failing format is reported as a
// *SerializationError without stopping the others. It returns the bytes
// written per completed format.
func WriteFiles(store *graph.Store, registry *schema.Registry, formats []Format, dir string) (map[Format]int64, []error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		errs := make([]error, 0, len(formats))
		for _, f := range formats {
			errs = append(errs, &SerializationError{Format: f, Err: err})
		}
		return nil, errs
	}

	exporter := NewExporter(store, registry)
	sizes := make(map[Format]int64, len(formats))
	var errs []error

	for _, format := range formats {
		path := filepath.Join(dir, "graph"+format.Ext())
		n, err := writeFile(exporter, format, path)
		if err != nil {
			serr, ok := err.(*SerializationError)
			if !ok {
				serr = &SerializationError{Format: format, Err: err}
			}
			errs = append(errs, serr)
			continue
		}
		sizes[format] = n
	}

	return sizes, errs
}

func writeFile(exporter *Exporter, format Format, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	exportErr := exporter.Export(format, f)
	closeErr := f.Close()
	if exportErr != nil {
		os.Remove(path)
		return 0, exportErr
	}
	if closeErr != nil {
		return 0, fmt.Errorf("close %s: %w", path, closeErr)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}
