// internal/cli/root.go
package docsearch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mwiater/docsearch/internal/appconfig"
	"github.com/mwiater/docsearch/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "docsearch",
	Short:        "docsearch — lexical search over a local folder of documents",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		used, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = used
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		_ = logging.Close()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "print results as JSON")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("root", "", "project root holding the data and storage directories")
	rootCmd.PersistentFlags().Int("chunkSize", 0, "characters per chunk")
	rootCmd.PersistentFlags().Int("chunkOverlap", 0, "characters shared by consecutive chunks")
	rootCmd.PersistentFlags().Int("topK", 0, "maximum number of results")

	for _, name := range []string{"debug", "jsonMode", "logFile", "root", "chunkSize", "chunkOverlap", "topK"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// setDefaults registers every config key so env vars and Unmarshal see it.
func setDefaults() {
	d := appconfig.Defaults()
	viper.SetDefault("root", d.Root)
	viper.SetDefault("dataDir", d.DataDir)
	viper.SetDefault("storageDir", d.StorageDir)
	viper.SetDefault("chunkSize", d.ChunkSize)
	viper.SetDefault("chunkOverlap", d.ChunkOverlap)
	viper.SetDefault("topK", d.TopK)
	viper.SetDefault("extensions", d.Extensions)
	viper.SetDefault("excludeGlobs", []string{})
	viper.SetDefault("previewChars", d.PreviewChars)
	viper.SetDefault("logFile", d.LogFile)
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	viper.SetEnvPrefix("DOCSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded validates and reads the config file when one exists and
// returns the path that was read, or "" when running on defaults.
func ensureConfigLoaded() (string, error) {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		if err := appconfig.ValidateFile(cfgFile); err != nil {
			return "", err
		}
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return "", nil
		}
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return viper.ConfigFileUsed(), nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
