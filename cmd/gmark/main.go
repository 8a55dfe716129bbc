package main

import (
	"log"

	"github.com/afeldman/gmark/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("gmark failed to start: %v", err)
	}
}
