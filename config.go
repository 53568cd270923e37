package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	limiter "github.com/ulule/limiter/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when no port is given
const DefaultPort = 3000

// Configuration stores server configuration parameters
type Configuration struct {
	Port        int    `json:"port" yaml:"port" toml:"port"`                      // port number
	Host        string `json:"host" yaml:"host" toml:"host"`                      // interface to bind to
	RootDir     string `json:"rootDir" yaml:"rootDir" toml:"rootDir"`             // directory to serve
	Base        string `json:"base" yaml:"base" toml:"base"`                      // base path for assets
	LogFile     string `json:"logFile" yaml:"logFile" toml:"logFile"`             // log file
	Verbose     int    `json:"verbose" yaml:"verbose" toml:"verbose"`             // verbosity level
	Quiet       bool   `json:"quiet" yaml:"quiet" toml:"quiet"`                   // suppress per-request logs
	Limiter     string `json:"limiter" yaml:"limiter" toml:"limiter"`             // rate limit, e.g. 100-S
	StatusPath  string `json:"statusPath" yaml:"statusPath" toml:"statusPath"`    // status endpoint, empty disables it
	MetricsPath string `json:"metricsPath" yaml:"metricsPath" toml:"metricsPath"` // metrics endpoint, empty disables it
	ServerKey   string `json:"serverKey" yaml:"serverKey" toml:"serverKey"`       // server key for https
	ServerCrt   string `json:"serverCrt" yaml:"serverCrt" toml:"serverCrt"`       // server certificate for https
}

// String returns string representation of server configuration
func (c *Configuration) String() string {
	return fmt.Sprintf("<Config host=%s port=%d root=%s base=%s quiet=%v limiter=%s status=%s metrics=%s verbose=%d log=%s crt=%s key=%s>", c.Host, c.Port, c.RootDir, c.Base, c.Quiet, c.Limiter, c.StatusPath, c.MetricsPath, c.Verbose, c.LogFile, c.ServerCrt, c.ServerKey)
}

// Addr returns the listen address
func (c *Configuration) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks configuration values which can not be fixed later
func (c *Configuration) Validate() error {
	if c.RootDir == "" {
		return errMissingRoot
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("port %d is out of range 0-65535", c.Port)
	}
	if c.Limiter != "" {
		if _, err := limiter.NewRateFromFormatted(c.Limiter); err != nil {
			return errors.Wrapf(err, "invalid limiter rate %q", c.Limiter)
		}
	}
	for _, p := range []string{c.Base, c.StatusPath, c.MetricsPath} {
		if p != "" && !strings.HasPrefix(p, "/") {
			return errors.Errorf("path %q must start with /", p)
		}
	}
	return nil
}

func defaultConfig() Configuration {
	return Configuration{Port: DefaultPort, Host: "localhost"}
}

// helper function to parse configuration file, the format is chosen by
// file extension: json, yaml/yml or toml
func parseConfig(configFile string, config *Configuration) error {
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return errors.Wrap(err, "unable to read config")
	}
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		err = json.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".toml":
		err = toml.Unmarshal(data, config)
	default:
		return errors.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to parse %s", configFile)
	}
	return nil
}
