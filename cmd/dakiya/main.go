package main

import (
	"log"

	"github.com/sarkaridakiya/dakiya/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ dakiya failed to start: %v", err)
	}
}
