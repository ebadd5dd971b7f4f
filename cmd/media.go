package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/service/media"
)

var (
	thumbsDir     string
	thumbsOptions media.Options
)

var mediaThumbsCmd = &cobra.Command{
	Use:   "media:thumbs",
	Short: "Generate WebP thumbnails for product images under the media directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadCatalog(cmd.Context(), catalogFile, false)
		if err != nil {
			return err
		}
		dir := thumbsDir
		if dir == "" {
			dir = config.App().MediaDir
		}

		out := cmd.OutOrStdout()
		var written, skipped, failed int
		for _, r := range media.Generate(dir, c.Products, thumbsOptions) {
			switch {
			case r.Err != nil:
				failed++
				fmt.Fprintf(out, "  [fail] %s: %v\n", r.ProductID, r.Err)
			case r.Skipped:
				skipped++
			default:
				written++
				fmt.Fprintf(out, "  %s -> %s\n", r.ProductID, r.Output)
			}
		}
		fmt.Fprintf(out, "Thumbnails: %d written, %d skipped, %d failed\n", written, skipped, failed)
		if failed > 0 {
			return fmt.Errorf("%d thumbnails failed", failed)
		}
		return nil
	},
}

func init() {
	f := mediaThumbsCmd.Flags()
	f.StringVarP(&catalogFile, "file", "f", "", "Catalog file (.json or .csv); default is CATALOG_SOURCE")
	f.StringVar(&thumbsDir, "dir", "", "Media directory (default MEDIA_DIR)")
	f.IntVar(&thumbsOptions.Width, "width", media.ThumbWidth, "Thumbnail box width")
	f.IntVar(&thumbsOptions.Height, "height", media.ThumbHeight, "Thumbnail box height")
	f.Float32Var(&thumbsOptions.Quality, "quality", 80, "WebP quality")
	rootCmd.AddCommand(mediaThumbsCmd)
}
