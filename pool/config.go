package pool

import (
	"time"

	"github.com/morpho-org/morpho-optimizers-sub014/config/encoding"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

const namedLogger = "pool"

type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// StepInterval is how often the daemon accrues the simulated pool
	// indices.
	StepInterval encoding.Duration `long:"step-interval"`
	// SupplyGrowthPerStep and BorrowGrowthPerStep are ray growth factors
	// applied to the simulated indices on every step.
	SupplyGrowthPerStep string `long:"supply-growth-per-step"`
	BorrowGrowthPerStep string `long:"borrow-growth-per-step"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration. The default growth factors accrue roughly 3bps and 5bps
// per step.
func NewDefaultConfig() Config {
	return Config{
		Level:               encoding.LogLevel{Level: logging.InfoLevel},
		StepInterval:        encoding.Duration{Duration: time.Second},
		SupplyGrowthPerStep: "1000000300000000000000000000",
		BorrowGrowthPerStep: "1000000500000000000000000000",
	}
}
