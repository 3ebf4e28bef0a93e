package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/statsexport/internal/domain/entities"
)

// loadSettings resolves the --config flag (or the default locations) and
// parses the file. Errors are logged and reported as nil settings.
func loadSettings(cmd *cobra.Command) *entities.Settings {
	configPath, _ := cmd.Flags().GetString("config")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Errorf(
				"no config file found: %v\nSpecify one with --config or create statsexport.yaml",
				err,
			)
			return nil
		}
	}

	logger.Infof("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return nil
	}
	return settings
}

// statsPath returns the stats file argument, defaulting to renovate-stats.json.
func statsPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "renovate-stats.json"
}
