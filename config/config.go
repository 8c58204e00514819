package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Config struct {
	HBase     HBase  `toml:"hbase"`
	LogLevel  string `toml:"log-level"`
	LogFile   string `toml:"log-file"`   // Empty logs to stdout.
	LogFormat string `toml:"log-format"` // "text" or "json".
	Job       Job    `toml:"job"`
}

// HBase locates the Thrift2 gateway in front of the cluster.
type HBase struct {
	Host    string            `toml:"host"`
	Port    int               `toml:"port"`
	Path    string            `toml:"path"`
	Timeout Duration          `toml:"timeout"`
	Headers map[string]string `toml:"headers"` // Extra HTTP headers, e.g. cloud auth tokens.
}

// Job configures the price sort job.
type Job struct {
	Inputs       []string `toml:"inputs"`
	InputFamily  string   `toml:"input-family"`
	Output       string   `toml:"output"`
	OutputFamily string   `toml:"output-family"`
	Reducers     int      `toml:"reducers"`
	Workers      int      `toml:"workers"` // Concurrent tasks, 0 means one per task.
}

// Duration is a time.Duration written as "10s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

var DefaultConf = Config{
	HBase: HBase{
		Host:    "localhost",
		Port:    9090,
		Timeout: Duration{10 * time.Second},
	},
	LogLevel:  "info",
	LogFormat: "text",
	Job: Job{
		Inputs:       []string{"table1", "table2"},
		InputFamily:  "info",
		Output:       "sorted_prices",
		OutputFamily: "result",
		Reducers:     1,
	},
}

// Load decodes path over a copy of DefaultConf. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	conf := DefaultConf
	conf.Job.Inputs = append([]string(nil), DefaultConf.Job.Inputs...)
	if path != "" {
		if _, err := toml.DecodeFile(path, &conf); err != nil {
			return nil, errors.Wrapf(err, "load config %s", path)
		}
	}
	return &conf, nil
}

func (c *Config) Validate() error {
	if c.HBase.Host == "" {
		return errors.New("hbase host must not be empty")
	}
	if c.HBase.Port <= 0 || c.HBase.Port > 65535 {
		return errors.Errorf("hbase port %d out of range", c.HBase.Port)
	}
	if c.HBase.Timeout.Duration <= 0 {
		return errors.New("hbase timeout must be positive")
	}
	if len(c.Job.Inputs) == 0 {
		return errors.New("job needs at least one input table")
	}
	if c.Job.Output == "" {
		return errors.New("job output table must not be empty")
	}
	if c.Job.Reducers <= 0 {
		return errors.Errorf("job reducers must be positive, got %d", c.Job.Reducers)
	}
	if c.Job.Workers < 0 {
		return errors.Errorf("job workers must not be negative, got %d", c.Job.Workers)
	}
	return nil
}
