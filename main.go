package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	logs "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vkuznet/memserve/assets"
)

// quietArg is the trailing argument which disables request logs
const quietArg = "--no-logs"

var errMissingRoot = errors.New("missing root directory")

// usage line printed on bad arguments
const usageLine = "Usage: memserve [options] <dir> [port] [--no-logs]"

// helper function to detect flags left after positional arguments,
// negative numbers are reported later as bad ports
func isFlag(arg string) bool {
	if arg == quietArg || len(arg) < 2 || arg[0] != '-' {
		return false
	}
	return arg[1] < '0' || arg[1] > '9'
}

// parseArgs builds server configuration from command line arguments.
// Precedence is: defaults, config file, flags, positional arguments.
func parseArgs(args []string, output io.Writer) (*Configuration, error) {
	config := defaultConfig()
	var opts Configuration
	var configFile string

	fs := flag.NewFlagSet("memserve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, usageLine)
		fs.PrintDefaults()
	}
	fs.StringVar(&configFile, "config", "", "configuration file (json, yaml or toml)")
	fs.StringVar(&opts.Host, "host", "", "interface to listen on (default localhost)")
	fs.StringVar(&opts.Base, "base", "", "base path to serve files under")
	fs.StringVar(&opts.LogFile, "logFile", "", "log file name, rotated daily")
	fs.IntVar(&opts.Verbose, "verbose", 0, "verbosity level")
	fs.BoolVar(&opts.Quiet, "no-logs", false, "disable per-request logging")
	fs.StringVar(&opts.Limiter, "limiter", "", "rate limit per client, e.g. 100-S")
	fs.StringVar(&opts.StatusPath, "status", "", "path of the status endpoint")
	fs.StringVar(&opts.MetricsPath, "metrics", "", "path of the prometheus endpoint")
	fs.StringVar(&opts.ServerCrt, "serverCrt", "", "server certificate for https")
	fs.StringVar(&opts.ServerKey, "serverKey", "", "server key for https")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configFile != "" {
		if err := parseConfig(configFile, &config); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			config.Host = opts.Host
		case "base":
			config.Base = opts.Base
		case "logFile":
			config.LogFile = opts.LogFile
		case "verbose":
			config.Verbose = opts.Verbose
		case "no-logs":
			config.Quiet = opts.Quiet
		case "limiter":
			config.Limiter = opts.Limiter
		case "status":
			config.StatusPath = opts.StatusPath
		case "metrics":
			config.MetricsPath = opts.MetricsPath
		case "serverCrt":
			config.ServerCrt = opts.ServerCrt
		case "serverKey":
			config.ServerKey = opts.ServerKey
		}
	})

	rest := fs.Args()
	if len(rest) > 0 {
		config.RootDir = rest[0]
		rest = rest[1:]
	}
	for _, arg := range rest {
		if isFlag(arg) {
			return nil, errors.Errorf("flag %s must be given before <dir>", arg)
		}
	}
	if len(rest) > 2 {
		rest = rest[:2]
	}
	for _, arg := range rest {
		if arg == quietArg {
			config.Quiet = true
			continue
		}
		port, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse port `%s`", arg)
		}
		config.Port = int(port)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func main() {
	setupLogger(os.Stderr, 0, false)
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		if errors.Cause(err) == errMissingRoot {
			logs.Error(usageLine)
		}
		logs.Fatal(err)
	}

	if err := setupLogging(config); err != nil {
		logs.WithFields(logs.Fields{"Error": err}).Fatal("unable to setup logging")
	}
	rep := newReporter(logs.StandardLogger())
	logs.Debug(config.String())

	rep.Info("Loading files...")
	start := time.Now()
	store, err := assets.Build(afero.NewOsFs(), config.RootDir, rep)
	if err != nil {
		logs.Fatal(err)
	}
	rep.Success("Loaded %d files in %.2fs.", store.Len(), time.Since(start).Seconds())

	srv, err := NewServer(config, store)
	if err != nil {
		logs.Fatal(err)
	}
	if !config.Quiet {
		fmt.Fprintln(logs.StandardLogger().Out)
		rep.Info("-- Server logs --")
	}
	if err := srv.ListenAndServe(); err != nil {
		logs.WithFields(logs.Fields{"Error": err}).Fatal("ListenAndServe")
	}
}
