// Package cli holds the flags and bootstrap shared by the commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/config"
	"github.com/challenai/hbaseops/logger"
	"github.com/spf13/cobra"
)

// Env is what every subcommand runs with.
type Env struct {
	Conf *config.Config
	Log  logger.Logger
	DB   *hbaseops.DB
	Out  io.Writer
}

// Flags are the persistent flags of a root command.
type Flags struct {
	ConfigPath string
	Host       string
	Port       int
	LogLevel   string

	log logger.Logger
}

// Register adds the persistent flags to root.
func (f *Flags) Register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&f.ConfigPath, "config", "c", "", "TOML config file")
	pf.StringVar(&f.Host, "host", "", "Thrift gateway host, overrides the config")
	pf.IntVar(&f.Port, "port", 0, "Thrift gateway port, overrides the config")
	pf.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error, overrides the config")
}

// Load reads the config file and applies flag overrides.
func (f *Flags) Load() (*config.Config, error) {
	conf, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.Host != "" {
		conf.HBase.Host = f.Host
	}
	if f.Port != 0 {
		conf.HBase.Port = f.Port
	}
	if f.LogLevel != "" {
		conf.LogLevel = f.LogLevel
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Setup loads the config and builds the logger and DB.
func (f *Flags) Setup(out io.Writer) (*Env, error) {
	conf, err := f.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(conf.LogLevel, conf.LogFile, conf.LogFormat)
	if err != nil {
		return nil, err
	}
	f.log = log
	return &Env{
		Conf: conf,
		Log:  log,
		DB:   hbaseops.NewHBase(conf.HBase, log),
		Out:  out,
	}, nil
}

// Printf writes to the command output.
func (e *Env) Printf(format string, args ...interface{}) {
	fmt.Fprintf(e.Out, format, args...)
}

// Execute runs root with a context cancelled on SIGINT or SIGTERM. A failed
// command is logged and the process exits non-zero.
func (f *Flags) Execute(root *cobra.Command) {
	if err := f.execute(root); err != nil {
		os.Exit(1)
	}
}

func (f *Flags) execute(root *cobra.Command) error {
	root.SilenceErrors = true
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err != nil {
		f.errorLogger(root).Errorf("%s: %v", root.Name(), err)
	}
	return err
}

// errorLogger is the one Setup built, or a plain one on the command's error
// output when the failure came before it.
func (f *Flags) errorLogger(root *cobra.Command) logger.Logger {
	if f.log != nil {
		return f.log
	}
	return logger.NewWriterLogger(root.ErrOrStderr())
}
