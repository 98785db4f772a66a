package main

import (
	"github.com/hydrostack/ras-compute/pkg/cli"
)

func main() {
	cli.Execute()
}
