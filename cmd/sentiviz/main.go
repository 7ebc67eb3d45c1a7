package main

import (
	"os"

	"github.com/ppiankov/sentiviz/internal/cli"
	"github.com/ppiankov/sentiviz/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("sentiviz failed", "err", err)
		os.Exit(1)
	}
}
