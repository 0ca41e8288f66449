package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"pmocli/internal/app"
)

func main() {
	// Pick up a .env before envconfig runs; absence is fine.
	_ = godotenv.Load()

	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pmo-pulse: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pmo-pulse: %v\n", err)
		os.Exit(1)
	}
}
