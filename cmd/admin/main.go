// Command thebar-admin is the operator console: it signs in against the API,
// lists contact submissions and downloads the CSV export.
package main

import (
	"os"

	"github.com/joho/godotenv"

	appconfig "github.com/thebar-catering/thebar-site/internal/config"
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCmd(appconfig.Load())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
