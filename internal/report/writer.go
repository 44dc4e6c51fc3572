package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

func (w *implWriter) Write(ctx context.Context, name string, res *videosummary.Result) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, format := range w.formats {
		var (
			path string
			err  error
		)
		switch format {
		case "json":
			path = filepath.Join(w.outputDir, name+".json")
			err = writeJSON(path, res)
		case "docx":
			path = filepath.Join(w.outputDir, name+".docx")
			err = resultToDocx(name, res, path)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", format, err)
		}

		w.logger.Info(ctx, "Wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}

func writeJSON(path string, res *videosummary.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
