// Command client is the interactive PantryKeeper shell.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/cli"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/config"
)

func main() {
	app, err := cli.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("pantrykeeper client: %v", err)
	}
	app.Run(context.Background())
}
