package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/wallfeed/wallfeed/internal/client/cli"
)

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wallfeed"
	}
	return filepath.Join(home, ".wallfeed")
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "server base URL")
	stateDir := flag.String("state", defaultStateDir(), "directory for session state")
	flag.Parse()

	app, err := cli.NewApp(*serverURL, *stateDir)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
