package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	rferrors "rfhistoric/internal/errors"
	"rfhistoric/internal/storage"
)

// Config holds all configuration for the application
type Config struct {
	// Database settings
	Host     string
	Port     int
	Username string
	Password string

	// Execution identity
	ProjectName   string
	ExecutionName string

	// Input settings
	InputPath  string
	Output     string
	ReportType string

	LogLevel string

	// Command flags
	Flags Flags
}

// Flags holds command-line only flags
type Flags struct {
	IgnoreResult  bool
	FullSuiteName bool
	SuiteSkipped  bool
	SaveJSON      string
	SaveXLSX      string
	NoDB          bool
	FromJSON      string
	Stats         bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Username:   DefaultUsername,
		Password:   DefaultPassword,
		InputPath:  DefaultInputPath,
		Output:     DefaultOutput,
		ReportType: DefaultReportType,
		LogLevel:   DefaultLogLevel,
		Flags:      Flags{SuiteSkipped: DefaultTrackSuiteSkipped},
	}
}

// NewViper returns a viper instance reading RFHISTORIC_* environment variables
// with the defaults of New. Flags bound to it take precedence when set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyHost, DefaultHost)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyUsername, DefaultUsername)
	v.SetDefault(KeyPassword, DefaultPassword)
	v.SetDefault(KeyInputPath, DefaultInputPath)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyReportType, DefaultReportType)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	return v
}

// Load creates a config from v and applies flags
func Load(v *viper.Viper, flags Flags) *Config {
	cfg := New()
	cfg.Apply(v)
	cfg.Flags = flags
	return cfg
}

// Apply overwrites the settings with the values resolved by v
func (c *Config) Apply(v *viper.Viper) {
	c.Host = v.GetString(KeyHost)
	c.Port = v.GetInt(KeyPort)
	c.Username = v.GetString(KeyUsername)
	c.Password = v.GetString(KeyPassword)
	c.ProjectName = v.GetString(KeyProjectName)
	c.ExecutionName = v.GetString(KeyExecutionName)
	c.InputPath = v.GetString(KeyInputPath)
	c.Output = v.GetString(KeyOutput)
	c.ReportType = v.GetString(KeyReportType)
	c.LogLevel = v.GetString(KeyLogLevel)
}

// LoadDotEnv loads the .env file of every dir into the process environment.
// Variables already set are kept. It returns the files that were read.
func LoadDotEnv(dirs ...string) []string {
	var loaded []string
	for _, dir := range dirs {
		path := filepath.Join(dir, EnvFile)
		// .env file might not exist, that's okay - use environment variables
		if err := godotenv.Load(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	return loaded
}

// Validate checks the settings needed to write results to the database
func (c *Config) Validate() error {
	if c.Flags.IgnoreResult || c.Flags.NoDB {
		return nil
	}
	if c.ProjectName == "" {
		return rferrors.Configf("projectname is required to store results (use -n or %s_%s)", EnvPrefix, strings.ToUpper(KeyProjectName))
	}
	if c.Port <= 0 || c.Port > 65535 {
		return rferrors.Configf("invalid port %d", c.Port)
	}
	return nil
}

// MySQL returns the database settings
func (c *Config) MySQL() storage.MySQLConfig {
	return storage.MySQLConfig{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.Username,
		Password: c.Password,
		Project:  c.ProjectName,
	}
}
