package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nihei9/predict/compressor"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGrammarPath = "grammar.txt"
	DefaultTokensPath  = "scan.txt"
	DefaultTablePath   = "parseTable.csv"

	FormatCSV  = "csv"
	FormatJSON = "json"
)

// defaultConfigFiles are looked up in the working directory when no configuration file is given.
var defaultConfigFiles = []string{
	"predict.toml",
	"predict.yaml",
	"predict.yml",
}

// Config holds the defaults of the command line. Flags take precedence over these values.
type Config struct {
	Grammar    string `toml:"grammar" yaml:"grammar"`
	Tokens     string `toml:"tokens" yaml:"tokens"`
	Table      string `toml:"table" yaml:"table"`
	Format     string `toml:"format" yaml:"format"`
	Compress   string `toml:"compress" yaml:"compress"`
	Verbose    bool   `toml:"verbose" yaml:"verbose"`
	TraceLevel string `toml:"trace_level" yaml:"trace_level"`
}

func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a configuration file. The format is chosen by the file extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read a config file: %w", err)
	}

	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(src), &c); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(src, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %v", ext)
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}

	return &c, nil
}

// LookupDefault loads the first default configuration file found in a directory. It returns
// the built-in defaults when there is none.
func LookupDefault(dir string) (*Config, error) {
	for _, name := range defaultConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Grammar == "" {
		c.Grammar = DefaultGrammarPath
	}
	if c.Tokens == "" {
		c.Tokens = DefaultTokensPath
	}
	if c.Table == "" {
		c.Table = DefaultTablePath
	}
	if c.Format == "" {
		c.Format = FormatFromPath(c.Table)
	}
	if c.Compress == "" {
		c.Compress = compressor.MethodNone.String()
	}
	if c.TraceLevel == "" {
		c.TraceLevel = "Info"
	}
}

func (c *Config) validate() error {
	switch c.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("unknown table format: %v (available: %v, %v)", c.Format, FormatCSV, FormatJSON)
	}
	if _, err := compressor.ParseMethod(c.Compress); err != nil {
		return err
	}
	return nil
}

// FormatFromPath guesses a table format from a file extension. CSV is the default.
func FormatFromPath(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatCSV
}
