package config

import (
	"flag"
	"os"
	"time"

	"github.com/furari-app/furari/internal/flagx"
)

// parseFlags populates selected CLI Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL (e.g., "http://127.0.0.1:8080")
//	-l string   locator URL for the local position provider
//	-f string   session file path
//	-t int      request timeout, seconds
//
// Only the flags listed here are parsed; everything else in os.Args is
// left for cobra.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "server base URL")
	fs.StringVar(&config.LocatorURL, "l", config.LocatorURL, "locator URL")
	fs.StringVar(&config.SessionFile, "f", config.SessionFile, "session file path")
	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
