package encoding

import (
	"time"

	"github.com/pkg/errors"

	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

// Duration is a wrapper over an actual duration so we can represent
// them as string in the toml configuration.
type Duration struct {
	time.Duration
}

// Get returns the stored duration.
func (d *Duration) Get() time.Duration {
	return d.Duration
}

// UnmarshalText unmarshals a duration from bytes.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d *Duration) UnmarshalFlag(s string) error {
	return d.UnmarshalText([]byte(s))
}

// MarshalText marshals a duration into bytes.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Bool is a wrapper over a boolean so flags and toml agree on the
// accepted spellings.
type Bool bool

// Get returns the stored value.
func (b *Bool) Get() bool {
	return bool(*b)
}

// UnmarshalText unmarshals a bool from bytes.
func (b *Bool) UnmarshalText(text []byte) error {
	switch string(text) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return errors.Errorf("invalid bool value: %s", text)
	}
	return nil
}

func (b *Bool) UnmarshalFlag(s string) error {
	return b.UnmarshalText([]byte(s))
}

// MarshalText marshals a bool into bytes.
func (b Bool) MarshalText() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// LogLevel is a wrapper over the actual log level
// so they can be specified as strings in the toml configuration.
type LogLevel struct {
	logging.Level
}

// Get returns the stored value.
func (l *LogLevel) Get() logging.Level {
	return l.Level
}

// UnmarshalText unmarshals a loglevel from bytes.
func (l *LogLevel) UnmarshalText(text []byte) error {
	var err error
	l.Level, err = logging.ParseLevel(string(text))
	return err
}

func (l *LogLevel) UnmarshalFlag(s string) error {
	return l.UnmarshalText([]byte(s))
}

// MarshalText marshals a loglevel into bytes.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
