package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/service/countdown"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// LabelEvent is the payload of one countdown event.
type LabelEvent struct {
	ProductID string `json:"productId"`
	Label     string `json:"label"`
	Ended     bool   `json:"ended"`
	At        string `json:"at"`
}

func RegisterRealtimeRoutes(apiGroup *echo.Group, d api.Deps) {
	interval := config.GetEnvDuration("COUNTDOWN_INTERVAL", countdown.DefaultInterval)
	registerRealtimeRoutes(apiGroup, d, interval)
}

func registerRealtimeRoutes(apiGroup *echo.Group, d api.Deps, interval time.Duration) {
	store := d.Store

	// GET /api/products/:id/countdown - Server-Sent Events, one "label" event
	// per interval until the client goes away.
	apiGroup.GET("/products/:id/countdown", func(c echo.Context) error {
		if err := api.RequireReady(store); err != nil {
			return err
		}
		p, ok := store.Product(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if _, ok := countdown.Label(p.DealEndTime, time.Now()); !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product has no deal window"})
		}

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set(echo.HeaderCacheControl, "no-cache")
		w.Header().Set(echo.HeaderConnection, "keep-alive")
		w.WriteHeader(http.StatusOK)

		// A failed write ends the stream; the client is gone.
		ctx, cancel := context.WithCancel(c.Request().Context())
		defer cancel()
		var mu sync.Mutex
		var writeErr error
		stop := countdown.Watch(ctx, p.DealEndTime, interval, func(label string) {
			mu.Lock()
			defer mu.Unlock()
			if writeErr != nil {
				return
			}
			data, _ := json.Marshal(LabelEvent{
				ProductID: p.ID,
				Label:     label,
				Ended:     label == countdown.Ended,
				At:        time.Now().UTC().Format(time.RFC3339),
			})
			if _, writeErr = fmt.Fprintf(w, "event: label\ndata: %s\n\n", data); writeErr != nil {
				cancel()
				return
			}
			w.Flush()
		})
		<-ctx.Done()
		stop()
		return nil
	})
}
