package commands

import (
	"github.com/mosaicnetworks/glomers/src/config"
)

//CLIConfig contains configuration for the root command
type CLIConfig struct {
	Glomers config.Config `mapstructure:",squash"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Glomers: *config.NewDefaultConfig(),
	}
}
