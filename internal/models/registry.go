package models

import (
	"context"
	"sync"
	"time"
)

// URLGenerator produces signed download URLs for attachment paths.
type URLGenerator interface {
	GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error)
}

var (
	urlGenerator URLGenerator
	registryMu   sync.RWMutex
)

// RegisterURLGenerator sets the storage backend used by Attachment.AfterFind.
func RegisterURLGenerator(generator URLGenerator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	urlGenerator = generator
}

func getURLGenerator() URLGenerator {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return urlGenerator
}
