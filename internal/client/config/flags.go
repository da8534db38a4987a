package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   server base URL (e.g., "http://localhost:8080")
//	-t int      request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "server base URL")
	timeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*timeout) * time.Second
}
