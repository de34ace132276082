package matching

import (
	"github.com/morpho-org/morpho-optimizers-sub014/config/encoding"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

const (
	// namedLogger is the identifier for package and should ideally match the
	// package name.
	namedLogger = "matching"
)

type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// CostPerIteration is the budget consumed per counterparty touched by
	// the matching loop. Budgets passed to Match/Unmatch are expressed in
	// the same abstract unit.
	CostPerIteration uint64 `description:"budget consumed per counterparty touched" long:"cost-per-iteration"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:            encoding.LogLevel{Level: logging.InfoLevel},
		CostPerIteration: 1,
	}
}
