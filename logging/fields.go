package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Thin aliases over the zap field constructors, so packages only ever
// import this logging package.

func String(key, val string) zap.Field {
	return zap.String(key, val)
}

func Stringer(key string, val fmt.Stringer) zap.Field {
	return zap.Stringer(key, val)
}

func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

func Duration(key string, val time.Duration) zap.Field {
	return zap.Duration(key, val)
}

func Error(val error) zap.Field {
	return zap.Error(val)
}
