package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/zettelwing/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".zettelwing"
	envPrefix  = "ZETTELWING"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist.
		// If verbose, we could print a notice, but it's not critical.
	}

	// Environment variable handling must be set up BEFORE reading the config
	// file so that env vars like ZETTELWING_REGISTRY_URL take effect.
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// Prefer a project-local .zettelwing directory when one exists,
		// otherwise fall back to the home directory and the project root.
		if _, err := os.Stat(configName); !os.IsNotExist(err) {
			viper.AddConfigPath(configName) // ./.zettelwing/.zettelwing.yaml
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.zettelwing.yaml
			viper.AddConfigPath(".")  // ./.zettelwing.yaml
			viper.SetConfigName(configName)
		}
	}

	// Attempt to read the configuration file.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault(types.ConfigKeyProjectRootDir, ".")
	viper.SetDefault(types.ConfigKeyProjectKnowledgeDir, filepath.Join(".zettelwing", "knowledge"))
	viper.SetDefault(types.ConfigKeyUserDir, defaultUserDir())
	viper.SetDefault(types.ConfigKeyRegistryURL, "")
	viper.SetDefault(types.ConfigKeyRegistryAuthToken, "")
	viper.SetDefault(types.ConfigKeyRegistryDriver, "libsql")

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// Ensure critical paths are set, falling back to Viper's defaults if
	// empty after unmarshal. Handles config files missing these nested keys.
	if GlobalAppConfig.Project.RootDir == "" {
		GlobalAppConfig.Project.RootDir = viper.GetString(types.ConfigKeyProjectRootDir)
	}
	if GlobalAppConfig.Project.KnowledgeDir == "" {
		GlobalAppConfig.Project.KnowledgeDir = viper.GetString(types.ConfigKeyProjectKnowledgeDir)
	}
	if GlobalAppConfig.User.Dir == "" {
		GlobalAppConfig.User.Dir = viper.GetString(types.ConfigKeyUserDir)
	}
	if GlobalAppConfig.Registry.Driver == "" {
		GlobalAppConfig.Registry.Driver = viper.GetString(types.ConfigKeyRegistryDriver)
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

func defaultUserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zettelwing"
	}
	return filepath.Join(home, ".zettelwing")
}
