package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard field constructors, so names stay consistent across the codebase.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func ClientID(v string) zap.Field { return zap.String("client_id", v) }

func GrantType(v string) zap.Field { return zap.String("grant_type", v) }

func Op(v string) zap.Field { return zap.String("op", v) }

func Err(err error) zap.Field { return zap.Error(err) }

// String is the escape hatch for one-off fields.
func String(k, v string) zap.Field { return zap.String(k, v) }
