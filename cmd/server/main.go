package main

import (
	"os"

	"github.com/dmitrijs2005/filestorage/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	os.Exit(server.Main())
}
