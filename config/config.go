package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

var (
	// tries reading configs in this order, with the first one that is present
	// being used
	configFilepaths = []string{"./hashmap.yml", "/etc/hashmap/hashmap.yml"}
)

const (
	defaultHost     = "localhost"
	defaultPort     = 5002
	defaultLogLevel = "info"
)

type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	Seed     Seed   `yaml:"seed"`
}

// Seed holds data loaded into the store at startup. Keys are left untyped
// here and checked when the store loads them.
type Seed struct {
	Entries yaml.MapSlice `yaml:"entries"`
	Members []interface{} `yaml:"members"`
}

func Default() Config {
	return Config{
		Host:     defaultHost,
		Port:     defaultPort,
		LogLevel: defaultLogLevel,
	}
}

func (c Config) ListenOn() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the config at path. With an empty path the default locations are
// searched, and defaults are returned if none of them exist.
func Load(fs afero.Fs, path string) (Config, error) {
	c := Default()

	if path == "" {
		for _, filepath := range configFilepaths {
			if ok, _ := afero.Exists(fs, filepath); ok {
				path = filepath
				break
			}
		}
		if path == "" {
			return c, nil
		}
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return c, errors.Wrap(err, "read config")
	}

	// Load the YAML over the defaults
	err = yaml.Unmarshal(content, &c)
	if err != nil {
		return c, errors.Wrapf(err, "decode config %s", path)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return c, errors.Errorf("invalid port %d in %s", c.Port, path)
	}

	return c, nil
}
