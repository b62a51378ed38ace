package main

import (
	"errors"
	"os"

	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/parser"
)

func main() {
	defer parser.ClosePools()

	if err := newRootCmd().Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			log.Error("%v", err)
		}
		os.Exit(1)
	}
}
