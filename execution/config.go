package execution

import (
	"github.com/morpho-org/morpho-optimizers-sub014/config/encoding"
	"github.com/morpho-org/morpho-optimizers-sub014/interest"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/markets"
	"github.com/morpho-org/morpho-optimizers-sub014/matching"
	"github.com/morpho-org/morpho-optimizers-sub014/positions"
)

const (
	// namedLogger is the identifier for package and should ideally match the
	// package name.
	namedLogger = "execution"
)

// Config is the configuration of the execution package, nesting the
// configuration of every engine it drives.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// MatchingBudget is the default cost budget per operation, callers can
	// override it per call.
	MatchingBudget uint64 `description:"default matching cost budget per operation" long:"matching-budget"`

	Markets   markets.Config   `group:"Markets"   namespace:"markets"`
	Matching  matching.Config  `group:"Matching"  namespace:"matching"`
	Interest  interest.Config  `group:"Interest"  namespace:"interest"`
	Positions positions.Config `group:"Positions" namespace:"positions"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		MatchingBudget: 32,
		Markets:        markets.NewDefaultConfig(),
		Matching:       matching.NewDefaultConfig(),
		Interest:       interest.NewDefaultConfig(),
		Positions:      positions.NewDefaultConfig(),
	}
}
