package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/amail/internal/buildinfo"
	"github.com/dmitrijs2005/amail/internal/server"
	"github.com/dmitrijs2005/amail/internal/server/config"
)

func main() {

	buildinfo.Print()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
