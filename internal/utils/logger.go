package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 按环境构建 Logger：dev 彩色控制台 + Debug，其余 JSON + Info，
// 每条日志都带上 service 和 env 字段
func NewLogger(env, service string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "dev":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.TimeKey = "ts"
	}
	cfg.InitialFields = map[string]interface{}{
		"service": service,
		"env":     env,
	}
	return cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitLogger 构建 Logger 并替换全局的 zap.L()
func InitLogger(env, service string) *zap.Logger {
	logger, err := NewLogger(env, service)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	zap.ReplaceGlobals(logger)
	return logger
}
