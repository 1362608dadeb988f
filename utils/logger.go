package utils

import (
	"go.uber.org/zap"
)

var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger swaps the no-op loggers for real ones. Production builds JSON output.
func InitLogger(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Log = l
	SLog = l.Sugar()
	return nil
}

func SyncLogger() {
	_ = Log.Sync()
}
