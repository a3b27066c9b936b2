package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/amail/internal/buildinfo"
	"github.com/dmitrijs2005/amail/internal/client/cli"
	"github.com/dmitrijs2005/amail/internal/client/config"
)

func main() {

	buildinfo.Print()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
