package kit

import "go.uber.org/zap"

// NewLogger builds the production logger every AquaKart service shares.
// An unparseable level falls back to info rather than failing startup.
func NewLogger(service, level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	cfg.InitialFields = map[string]any{"service": service}
	l, _ := cfg.Build()
	return l
}
