// Package custom wires the deals feature into every extension point: a
// GraphQL _extension, a CLI command and an /api route. Import it for its
// side effects.
package custom

import (
	"context"
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storefront.GO/api"
	"storefront.GO/cmd"
	"storefront.GO/config"
	gqlregistry "storefront.GO/graphql/registry"
	"storefront.GO/service/catalog"
	productService "storefront.GO/service/product"
)

// DealSummary is one running deal.
type DealSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Label          string `json:"label"`
	EndsAt         string `json:"endsAt"`
	SavingsPercent int    `json:"savingsPercent,omitempty"`
}

// Deals summarizes the active deals of store at now, soonest ending first.
func Deals(store *catalog.Store, now time.Time) ([]DealSummary, error) {
	if _, err := store.Catalog(); err != nil {
		return nil, err
	}
	deals := productService.ActiveDeals(store.Products(), now, config.App().ContactPhone)
	out := make([]DealSummary, 0, len(deals))
	for _, d := range deals {
		out = append(out, DealSummary{
			ID:             d.ID,
			Name:           d.Name,
			Label:          d.DealLabel,
			EndsAt:         d.DealEndTime,
			SavingsPercent: d.SavingsPercent,
		})
	}
	return out, nil
}

func init() {
	// GraphQL extension: _extension(name: "deals", args: "{\"limit\": 3}")
	gqlregistry.Register("deals", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		deals, err := Deals(catalog.DefaultStore(), time.Now())
		if err != nil {
			return nil, err
		}
		if limit, ok := args["limit"].(float64); ok && limit >= 0 && int(limit) < len(deals) {
			deals = deals[:int(limit)]
		}
		return deals, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "deals:list",
		Short: "List running deals, soonest ending first",
		RunE: func(c *cobra.Command, args []string) error {
			store := catalog.DefaultStore()
			if err := store.Load(c.Context()); err != nil {
				return err
			}
			deals, err := Deals(store, time.Now())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDEAL\tENDS")
			for _, d := range deals {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Label, d.EndsAt)
			}
			return tw.Flush()
		},
	})

	// HTTP route: GET /api/deals
	api.RegisterModule(func(g *echo.Group, d api.Deps) {
		g.GET("/deals", func(c echo.Context) error {
			if err := api.RequireReady(d.Store); err != nil {
				return err
			}
			deals, err := Deals(d.Store, time.Now())
			if err != nil {
				return err
			}
			return c.JSON(http.StatusOK, deals)
		})
	})
}
