package markets

import (
	"github.com/morpho-org/morpho-optimizers-sub014/config/encoding"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

const namedLogger = "markets"

type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	// MaxSortedUsers bounds the strictly sorted region of every priority
	// queue, deployment wide. Everything past it sits in the unordered
	// tail, keeping per-operation queue maintenance bounded.
	MaxSortedUsers uint64 `description:"sorted-region depth of the priority queues" long:"max-sorted-users"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		MaxSortedUsers: 16,
	}
}
