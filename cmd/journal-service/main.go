package main

import (
	"os"

	"github.com/pebblelab/pebble-journal/journalservice"
)

func main() {
	if err := journalservice.Run(); err != nil {
		os.Exit(1)
	}
}
