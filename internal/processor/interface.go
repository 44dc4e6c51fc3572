package processor

import "context"

// Processor defines the interface for media processing operations
type Processor interface {
	Process(ctx context.Context, mediaPath string) error
}
