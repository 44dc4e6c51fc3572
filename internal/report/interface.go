package report

import (
	"context"

	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

// Writer persists a workflow result in one or more formats.
type Writer interface {
	// Write stores res under name (without extension) and returns the files written.
	Write(ctx context.Context, name string, res *videosummary.Result) ([]string, error)
}
