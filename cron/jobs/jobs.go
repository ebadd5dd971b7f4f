// Package jobs holds the built-in scheduled jobs. Importing it registers
// them with the cron registry.
package jobs

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"storefront.GO/config"
	"storefront.GO/cron"
	"storefront.GO/service/catalog"
	productService "storefront.GO/service/product"
	"storefront.GO/service/session"
)

const (
	SessionSweep = "session_sweep"
	DealReport   = "deal_report"
)

func init() {
	cron.Register(SessionSweep, "@every 5m", SessionSweepJob)
	cron.Register(DealReport, "0 * * * *", DealReportJob)
}

// SessionSweepJob drops expired browsing sessions from the default registry.
func SessionSweepJob(...string) {
	n := session.DefaultRegistry().Purge()
	log.Printf("[cron] %s: %d expired entries removed", SessionSweep, n)
}

// DealReportJob prints the running deals of the default catalog. It loads
// the catalog first when run outside the server.
func DealReportJob(...string) {
	store := catalog.DefaultStore()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := store.Load(ctx); err != nil {
		log.Printf("[cron] %s: %v", DealReport, err)
		return
	}
	n, err := WriteDealReport(os.Stdout, store, time.Now(), config.App().ContactPhone)
	if err != nil {
		log.Printf("[cron] %s: %v", DealReport, err)
		return
	}
	log.Printf("[cron] %s: %d active deals", DealReport, n)
}

// WriteDealReport writes one line per active deal, soonest ending first.
func WriteDealReport(w io.Writer, store *catalog.Store, now time.Time, phone string) (int, error) {
	if _, err := store.Catalog(); err != nil {
		return 0, err
	}
	deals := productService.ActiveDeals(store.Products(), now, phone)
	for _, d := range deals {
		if _, err := fmt.Fprintf(w, "%-6s %-40s %-28s %s\n", d.ID, d.Name, d.DealLabel, d.DealEndTime); err != nil {
			return 0, err
		}
	}
	return len(deals), nil
}
