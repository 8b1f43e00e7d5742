package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/rostermerge/pkg/constants"
	"github.com/agentstation/rostermerge/pkg/errors"
)

// EnvPrefix namespaces every environment variable the CLI reads.
const EnvPrefix = "ROSTERMERGE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Run inputs and outputs
	SchemaFile     string
	FilesRoot      string
	ReportFile     string
	NamesFile      string
	ProvenanceFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (ROSTERMERGE_*)
//  3. .env files
//  4. Config file (.rostermerge.yaml in the home or working directory)
//  5. Defaults
//
// An explicit configFile must exist; the search locations may be empty.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("schema", constants.DefaultSchemaFile)
	v.SetDefault("root", constants.DefaultFilesRoot)
	v.SetDefault("output", constants.DefaultOutputFile)
	v.SetDefault("names", constants.DefaultNamesFile)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapResource("read", "config", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".rostermerge")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.WrapResource("read", "config", "", err)
			}
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		SchemaFile:     v.GetString("schema"),
		FilesRoot:      v.GetString("root"),
		ReportFile:     v.GetString("output"),
		NamesFile:      v.GetString("names"),
		ProvenanceFile: v.GetString("provenance"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// Flags carries the persistent flag values parsed by cobra. Empty strings
// leave the loaded configuration untouched.
type Flags struct {
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
	Schema     string
	Root       string
	Output     string
	Names      string
	Provenance string
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(f Flags) {
	c.Verbose = c.Verbose || f.Verbose
	c.Quiet = c.Quiet || f.Quiet
	c.NoColor = c.NoColor || f.NoColor

	override(&c.Format, f.Format)
	override(&c.LogLevel, f.LogLevel)
	override(&c.SchemaFile, f.Schema)
	override(&c.FilesRoot, f.Root)
	override(&c.ReportFile, f.Output)
	override(&c.NamesFile, f.Names)
	override(&c.ProvenanceFile, f.Provenance)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never
// overrides a variable that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
