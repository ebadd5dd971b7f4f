// Standalone GraphQL server, run with: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront.GO/api"
	graphqlApi "storefront.GO/api/graphql"
	"storefront.GO/config"
	_ "storefront.GO/custom"
	"storefront.GO/service/catalog"
	"storefront.GO/service/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.App()

	store := catalog.DefaultStore()
	store.LoadAsync(context.Background())
	deps := api.Deps{Store: store, Sessions: session.DefaultRegistry()}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	graphqlApi.RegisterGraphQLRoutes(e, deps)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("storefront GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", cfg.Port, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
