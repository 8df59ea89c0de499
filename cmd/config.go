package cmd

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/fzft/go-chaintable/db"
)

var (
	CliHisFileEnv     = "CHAINTABLE_HISTFILE"
	CliHisFileDefault = ".chaintable_history"
	CliCapacityEnv    = "CHAINTABLE_CAPACITY"
)

// Config holds the command line settings of the shell.
type Config struct {
	Capacity    int
	Demo        bool
	Verbose     bool
	ShowVersion bool
	HistoryFile string
}

// ParseConfig reads flags from args. Environment values, looked up through
// getenv, provide the defaults that flags override.
func ParseConfig(args []string, getenv func(string) string, stderr io.Writer) (*Config, error) {
	config := &Config{Capacity: db.DefaultCapacity}
	if env := getenv(CliCapacityEnv); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", CliCapacityEnv, env, db.ErrInvalidArgument)
		}
		config.Capacity = n
	}

	fs := flag.NewFlagSet("chaintable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&config.Capacity, "capacity", config.Capacity, "number of buckets in the table")
	fs.BoolVar(&config.Demo, "demo", false, "run the demonstration and exit")
	fs.BoolVar(&config.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&config.ShowVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q: %w", fs.Arg(0), db.ErrInvalidArgument)
	}
	if config.Capacity <= 0 {
		return nil, fmt.Errorf("capacity %d must be positive: %w", config.Capacity, db.ErrInvalidArgument)
	}

	config.HistoryFile = getDotfilePath(getenv, CliHisFileEnv, CliHisFileDefault)
	return config, nil
}

func getDotfilePath(getenv func(string) string, envOverride, dotFilename string) string {
	var dotPath string

	path := getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		dotPath = path
	} else {
		home := getenv("HOME")
		if home != "" {
			dotPath = fmt.Sprintf("%s/%s", home, dotFilename)
		}
	}
	return dotPath
}
