package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
	"storefront.GO/service/filter"
	productService "storefront.GO/service/product"
	"storefront.GO/service/query"
	"storefront.GO/service/search"
)

var (
	catalogFile   string
	catalogStrict bool

	queryText     string
	queryCategory string
	queryMin      float64
	queryMax      float64
	querySort     string
	queryTags     []string
	queryJSON     bool

	indexConcurrency int
)

// loadCatalog reads the catalog from --file (JSON or CSV) or, without one,
// from the configured source. CSV warnings are returned alongside.
func loadCatalog(ctx context.Context, file string, strict bool) (*entity.Catalog, []string, error) {
	strict = strict || config.App().StrictCategories
	opts := catalog.Options{StrictCategories: strict}
	if file == "" {
		cfg := *config.App()
		cfg.StrictCategories = strict
		store := catalog.NewStore(catalog.SourceFromConfig(&cfg), 0)
		if err := store.Load(ctx); err != nil {
			return nil, nil, err
		}
		c, err := store.Catalog()
		return c, nil, err
	}
	if strings.EqualFold(filepath.Ext(file), ".csv") {
		f, err := os.Open(file)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return productService.ParseCSV(f, opts)
	}
	c, err := catalog.FileSource{Path: file, Options: opts}.Load(ctx)
	return c, nil, err
}

var catalogValidateCmd = &cobra.Command{
	Use:   "catalog:validate",
	Short: "Validate a catalog document (JSON or CSV) and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, warnings, err := loadCatalog(cmd.Context(), catalogFile, catalogStrict)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range warnings {
			fmt.Fprintf(out, "  [warn] %s\n", w)
		}
		fmt.Fprintf(out, "OK: %d products, %d categories, %d tags\n",
			len(c.Products), len(c.Categories), len(query.AllTags(c.Products)))
		return nil
	},
}

var catalogQueryCmd = &cobra.Command{
	Use:   "catalog:query",
	Short: "Filter and sort the catalog from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadCatalog(cmd.Context(), catalogFile, catalogStrict)
		if err != nil {
			return err
		}
		patch := filter.Merge(
			filter.Search(queryText),
			filter.Category(queryCategory),
			filter.Price(queryMin, queryMax),
			filter.SortBy(entity.SortOption(querySort)),
			filter.Tags(queryTags...),
		)
		if err := patch.Validate(); err != nil {
			return err
		}
		state := patch.Apply(entity.DefaultFilterState())
		res := query.Run(c.Products, state)

		out := cmd.OutOrStdout()
		if queryJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY\tRATING")
		for _, p := range res.Products {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%.1f\n", p.ID, p.Name, p.Price, p.Category, p.Rating)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d of %d products\n", res.TotalCount, len(c.Products))
		return nil
	},
}

var catalogTagsCmd = &cobra.Command{
	Use:   "catalog:tags",
	Short: "Print the tag vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadCatalog(cmd.Context(), catalogFile, catalogStrict)
		if err != nil {
			return err
		}
		for _, t := range query.AllTags(c.Products) {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

var catalogIndexCmd = &cobra.Command{
	Use:   "catalog:index",
	Short: "Export the catalog to Elasticsearch",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadCatalog(cmd.Context(), catalogFile, catalogStrict)
		if err != nil {
			return err
		}
		ix := search.NewIndexer()
		start := time.Now()
		rep, err := ix.IndexAll(cmd.Context(), c.Products, indexConcurrency)
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d, failed %d into %s in %s\n",
			rep.Indexed, rep.Failed, ix.IndexName(), time.Since(start).Round(time.Millisecond))
		if err != nil {
			return err
		}
		return ix.Refresh(cmd.Context())
	},
}

func init() {
	for _, c := range []*cobra.Command{catalogValidateCmd, catalogQueryCmd, catalogTagsCmd, catalogIndexCmd} {
		c.Flags().StringVarP(&catalogFile, "file", "f", "", "Catalog file (.json or .csv); default is CATALOG_SOURCE")
		c.Flags().BoolVar(&catalogStrict, "strict", false, "Fail on products in undeclared categories (also CATALOG_STRICT_CATEGORIES)")
		rootCmd.AddCommand(c)
	}
	f := catalogQueryCmd.Flags()
	f.StringVarP(&queryText, "search", "q", "", "Search text")
	f.StringVarP(&queryCategory, "category", "c", "", "Category (empty or All for every category)")
	f.Float64Var(&queryMin, "min", entity.DefaultPriceMin, "Minimum price")
	f.Float64Var(&queryMax, "max", entity.DefaultPriceMax, "Maximum price")
	f.StringVarP(&querySort, "sort", "s", string(entity.SortNameAsc), "Sort key")
	f.StringSliceVarP(&queryTags, "tags", "t", nil, "Tags (any match)")
	f.BoolVar(&queryJSON, "json", false, "Print JSON")

	catalogIndexCmd.Flags().IntVar(&indexConcurrency, "concurrency", 4, "Parallel index requests")
}
