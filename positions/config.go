package positions

import (
	"github.com/morpho-org/morpho-optimizers-sub014/config/encoding"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

const (
	// namedLogger is the identifier for package and should ideally match the
	// package name. This is simply emitted as a hierarchical label, e.g.
	// 'execution.positions'.
	namedLogger = "positions"
)

type Config struct {
	Level encoding.LogLevel `long:"log-level"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
