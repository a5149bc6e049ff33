package main

import (
	"masseurmatch_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Local development loads its environment from .env; deployed
	// instances set real environment variables and have no .env file.
	_ = godotenv.Load()

	app.Run()
}
