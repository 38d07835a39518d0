package main

import (
	"fmt"
	"os"

	"github.com/furari-app/furari/internal/client/cli"
	"github.com/furari-app/furari/internal/client/config"
	"github.com/furari-app/furari/internal/flagx"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(app)
	// the config layer owns these flags; cobra gets the rest
	root.SetArgs(flagx.StripArgs(os.Args[1:], []string{"-a", "-l", "-f", "-t", "-c", "-config"}))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
