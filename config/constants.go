package config

import (
	"time"

	"github.com/brettbedarf/foldertree/internal/util"
	"github.com/brettbedarf/foldertree/pathutil"
)

// CLI verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	DefaultMaxPathLength = pathutil.DefaultMaxPathLength
	DefaultMaxNameLength = pathutil.DefaultMaxNameLength

	DefaultMetrics = false

	DefaultStressWorkers      = 8
	DefaultStressOpsPerWorker = 5000
	DefaultStressSeed         = 100
	// all four operations
	DefaultStressMask    = 15
	DefaultStressTimeout = 30 * time.Second
)

// EnvPrefix is prepended to every environment variable read by [Load]
const EnvPrefix = "FOLDERTREE"
