// scerpa-config - terminal editor for SCERPA simulation configuration records
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/scerpa/scerpa-config/internal/cli"
)

func main() {
	// Settings may come from a local .env; a missing file is fine
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
