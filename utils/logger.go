package utils

import "go.uber.org/zap"

// NewLogger builds the process logger. GIN_MODE=release gets production
// JSON output, anything else the development console encoder.
func NewLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
