package main

import (
	"log"

	"github.com/hydrostack/ras-compute/pkg/logging"
	"github.com/hydrostack/ras-compute/pkg/server"
)

var (
	// overridden during build with ldflags
	version = "dev"
)

func main() {
	logging.SetDefaultStructuredLogger("rasd", version)

	config := server.NewConfig()
	config.Version = version

	if err := server.Run(config); err != nil {
		log.Fatal(err)
	}
}
