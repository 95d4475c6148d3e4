package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // a local .env is optional

	if Execute() != nil {
		os.Exit(1)
	}
}
