/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// Configuration keys for viper lookups.
const (
	ConfigKeyProjectRootDir      = "project.rootDir"
	ConfigKeyProjectKnowledgeDir = "project.knowledgeDir"
	ConfigKeyUserDir             = "user.dir"
	ConfigKeyRegistryURL         = "registry.url"
	ConfigKeyRegistryAuthToken   = "registry.authToken"
	ConfigKeyRegistryDriver      = "registry.driver"
	ConfigKeyVerbose             = "verbose"
)

// ProjectConfig holds the project-tier layout.
type ProjectConfig struct {
	// RootDir is the project root the server was launched for.
	RootDir string `mapstructure:"rootDir"`
	// KnowledgeDir is where project entries live, relative to RootDir
	// unless absolute.
	KnowledgeDir string `mapstructure:"knowledgeDir"`
}

// UserConfig holds the user-tier layout.
type UserConfig struct {
	// Dir is the user-global knowledge directory, usually under $HOME.
	Dir string `mapstructure:"dir"`
}

// RegistryConfig holds remote registry connection settings. The registry is
// optional; when URL or AuthToken is empty the server degrades gracefully.
type RegistryConfig struct {
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"authToken"`
	// Driver selects the database/sql driver. Defaults to libsql.
	Driver string `mapstructure:"driver"`
}

// AppConfig mirrors the configuration file structure.
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Project  ProjectConfig  `mapstructure:"project"`
	User     UserConfig     `mapstructure:"user"`
	Registry RegistryConfig `mapstructure:"registry"`
}
