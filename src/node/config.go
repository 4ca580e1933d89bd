package node

import (
	"testing"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/sirupsen/logrus"
)

// Config holds what a Node needs from its environment.
type Config struct {
	Logger *logrus.Entry
}

// NewConfig ...
func NewConfig(logger *logrus.Entry) *Config {
	return &Config{
		Logger: logger,
	}
}

// DefaultConfig returns a Config with a debug-level logger on stderr.
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.DebugLevel

	return &Config{
		Logger: logrus.NewEntry(logger),
	}
}

// TestConfig returns a Config whose logger writes through t.Log.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, common.TestLogLevel)
	return config
}
