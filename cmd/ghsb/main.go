package main

import (
	"github.com/joho/godotenv"

	"github.com/custodia-labs/ghsb/internal/adapters/driving/cli"
)

func main() {
	// A missing .env file is fine; the environment and config file cover it.
	_ = godotenv.Load()

	cli.Execute()
}
