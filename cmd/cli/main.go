package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/client/cli"
	"github.com/dmitrijs2005/filestorage/internal/client/config"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
