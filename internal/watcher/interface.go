package watcher

import "context"

// Watcher monitors the input folder for URL list files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one URL list file
type EventHandler func(ctx context.Context, filePath string) error
