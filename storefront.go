//go:build !cli

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront.GO/api"
	_ "storefront.GO/api/catalog"
	_ "storefront.GO/api/graphql"
	_ "storefront.GO/api/realtime"
	_ "storefront.GO/api/session"
	"storefront.GO/config"
	"storefront.GO/cron"
	_ "storefront.GO/cron/jobs"
	_ "storefront.GO/custom"
	_ "storefront.GO/html"
	"storefront.GO/service/catalog"
	"storefront.GO/service/session"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.App()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured, product list cache disabled."
	if config.RedisClient != nil {
		if err := config.PingRedis(); err != nil {
			redisStatus = "Redis configured but not reachable, product list cache disabled: " + err.Error()
		} else {
			redisStatus = "Redis connection successful, product list cache enabled."
		}
	}
	log.Println(redisStatus)

	store := catalog.DefaultStore()
	loadCtx, cancelLoad := context.WithCancel(context.Background())
	store.LoadAsync(loadCtx)
	log.Printf("Loading catalog from %s (delay %s)", store.SourceName(), cfg.CatalogLoadDelay)

	deps := api.Deps{Store: store, Sessions: session.DefaultRegistry()}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// Server-sent events must not be buffered by the compressor.
		Skipper: func(c echo.Context) bool { return strings.HasSuffix(c.Path(), "/countdown") },
	}))
	e.Use(middleware.Decompress())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: config.GetCORSOrigins()}))
	e.Use(api.RequestTimer())
	e.Static(cfg.MediaUrl, cfg.MediaDir)

	api.ApplyModules(e.Group("/api"), deps)
	api.ApplyRoutes(e, deps)

	// Session sweeps must run in the process that holds the sessions.
	var scheduler interface{ Stop() context.Context }
	if config.GetEnvBool("CRON_ENABLED", true) {
		scheduler = cron.StartCron()
	}

	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d", "puffy"}
	figure.NewFigure("storefront.GO", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()

	go func() {
		log.Printf("Server running on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		10*time.Second,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				return e.Shutdown(ctx)
			},
			"catalog": func(ctx context.Context) error {
				cancelLoad()
				return nil
			},
			"cron": func(ctx context.Context) error {
				if scheduler == nil {
					return nil
				}
				select {
				case <-scheduler.Stop().Done():
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	)
	exitCode := <-wait
	log.Printf("storefront exited with code: %d", exitCode)
	os.Exit(exitCode)
}
