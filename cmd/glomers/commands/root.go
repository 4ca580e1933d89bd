package commands

import (
	"path/filepath"

	"github.com/mosaicnetworks/glomers/src/glomers"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_config = NewDefaultCLIConfig()
)

//NewRootCmd returns the root command. Without a sub-command it runs a node
//that reads requests from stdin and writes replies to stdout.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "glomers",
		Short:   "glomers node",
		Args:    cobra.NoArgs,
		PreRunE: loadConfig,
		RunE:    runGlomers,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runGlomers(cmd *cobra.Command, args []string) error {
	engine := glomers.NewGlomers(&_config.Glomers)

	if err := engine.Init(); err != nil {
		_config.Glomers.Logger().Error("Cannot initialize engine:", err)
		return err
	}

	// fatal errors are logged by the engine
	return engine.Run()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the root command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Glomers.DataDir, "Directory containing the optional glomers.toml")
	cmd.Flags().String("log", _config.Glomers.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.Glomers.LogFile, "Also write logs to this file")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.Glomers.ServiceAddr, "Listen IP:Port for HTTP service, disabled when empty")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	configFile, err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	logger := _config.Glomers.Logger()

	if configFile != "" {
		logger.Debugf("Using config file: %s", configFile)
	} else {
		logger.Debugf("No config file found in: %s", _config.Glomers.DataDir)
	}

	logger.WithFields(logrus.Fields{
		"glomers.DataDir":     _config.Glomers.DataDir,
		"glomers.LogLevel":    _config.Glomers.LogLevel,
		"glomers.LogFile":     _config.Glomers.LogFile,
		"glomers.ServiceAddr": _config.Glomers.ServiceAddr,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper. It returns the path of the
// config file that was used, if any.
func bindFlagsLoadViper(cmd *cobra.Command) (string, error) {
	v := viper.New()

	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return "", err
	}

	// first unmarshal to read from CLI flags
	if err := v.Unmarshal(_config); err != nil {
		return "", err
	}

	// look for config file in [datadir]/glomers.toml (.json, .yaml also work)
	v.SetConfigName(filepath.Base(_config.Glomers.ConfigFile()))
	v.AddConfigPath(filepath.Dir(_config.Glomers.ConfigFile()))

	configFile := ""
	if err := v.ReadInConfig(); err == nil {
		configFile = v.ConfigFileUsed()
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return "", err
	}

	// second unmarshal to read from config file
	return configFile, v.Unmarshal(_config)
}
