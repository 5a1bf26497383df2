// Package cleanup provides the background cache eviction worker.
package cleanup

import (
	"time"

	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// Config holds cleanup worker settings
type Config struct {
	CleanupInterval  time.Duration
	SessionIdleTTL   time.Duration
	SnapshotStaleTTL time.Duration
	VerboseReporting bool
}

// NewConfig builds cleanup configuration from the central defaults
func NewConfig() *Config {
	return &Config{
		CleanupInterval:  config.CacheCleanupInterval,
		SessionIdleTTL:   config.SelectionIdleTTL,
		SnapshotStaleTTL: config.SnapshotPageTTL,
		VerboseReporting: config.CacheCleanupVerbose,
	}
}
