// Command server runs the PantryKeeper HTTP API and its gRPC health
// endpoint.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pantrykeeper/internal/server"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("pantrykeeper server: %v", err)
	}
	app.Run(ctx)
}
