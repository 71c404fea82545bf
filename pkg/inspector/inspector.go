// Package inspector implements read-only structural analysis of HEC-RAS
// HDF5 files: tree walks, dataset listing, bounded sampling, and
// heuristic extraction of known geometry/results datasets.
//
// Every operation opens the file, does bounded work, and closes it
// before returning. There is no cache and no shared mutable state, so
// concurrent requests are independent by construction.
package inspector

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/config"
)

// Inspector handles inspection requests
type Inspector struct {
	config          *config.Config
	logger          *logrus.Logger
	patterns        PatternTable
	startTime       time.Time
	lastRequestTime time.Time
	mu              sync.RWMutex
	tracer          trace.Tracer
}

// New creates a new inspector using the default HEC-RAS pattern table.
func New(cfg *config.Config, logger *logrus.Logger) (*Inspector, error) {
	return NewWithPatterns(cfg, logger, DefaultPatternTable())
}

// NewWithPatterns creates an inspector with a caller-supplied pattern
// table, so new data producers can be supported without code changes.
func NewWithPatterns(cfg *config.Config, logger *logrus.Logger, patterns PatternTable) (*Inspector, error) {
	if err := patterns.Validate(); err != nil {
		return nil, err
	}

	return &Inspector{
		config:          cfg,
		logger:          logger,
		patterns:        patterns,
		startTime:       time.Now(),
		lastRequestTime: time.Now(),
		tracer:          otel.Tracer("hdf-inspector"),
	}, nil
}

// Patterns returns the pattern table this inspector matches against.
func (ins *Inspector) Patterns() PatternTable {
	return ins.patterns
}

func (ins *Inspector) touch() {
	ins.mu.Lock()
	ins.lastRequestTime = time.Now()
	ins.mu.Unlock()
}

// GetServerInfo returns service information for the /server_info endpoint
func (ins *Inspector) GetServerInfo() models.ServerInfo {
	ins.mu.RLock()
	defer ins.mu.RUnlock()

	return models.ServerInfo{
		ServiceID:       "hdf-inspector",
		StartTime:       ins.startTime,
		LastRequestTime: ins.lastRequestTime,
		PatternTable:    ins.patterns.Version,
		SystemStats:     ins.GetSystemStats(),
	}
}
