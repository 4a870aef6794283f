package processor

import "context"

// Processor digests every video listed in a URL list file
type Processor interface {
	Process(ctx context.Context, listPath string) error
}
