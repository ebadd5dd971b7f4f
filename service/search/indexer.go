// Package search exports the catalog to an Elasticsearch index so external
// search tooling can query the same products the storefront shows.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/elastic/go-elasticsearch/v8"
	"golang.org/x/sync/errgroup"

	"storefront.GO/model/entity"
	"storefront.GO/service/query"
)

// ErrNotConfigured is returned when no client could be built.
var ErrNotConfigured = errors.New("elasticsearch not configured")

type Indexer struct {
	client *elasticsearch.Client
	prefix string
}

// NewIndexer reads ELASTICSEARCH_HOST and ELASTICSEARCH_INDEX_PREFIX.
func NewIndexer() *Indexer {
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		host = "http://localhost:9200"
	}
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "storefront"
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return &Indexer{prefix: prefix}
	}
	return &Indexer{client: client, prefix: prefix}
}

// NewIndexerWithClient wraps an existing client.
func NewIndexerWithClient(client *elasticsearch.Client, prefix string) *Indexer {
	return &Indexer{client: client, prefix: prefix}
}

// IndexName is the target index for products.
func (ix *Indexer) IndexName() string {
	return ix.prefix + "_catalog_product"
}

// Document maps a product to its index document.
func Document(p entity.Product) map[string]interface{} {
	doc := map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"tags":        p.Tags,
		"rating":      p.Rating,
		"reviews":     p.Reviews,
		"has_deal":    p.HasDeal(),
	}
	if p.OriginalPrice != nil {
		doc["original_price"] = *p.OriginalPrice
	}
	if p.DealEndTime != "" {
		doc["deal_end_time"] = p.DealEndTime
	}
	if t, ok := query.ParseDate(p.LastUpdated); ok {
		doc["last_updated"] = t.Format("2006-01-02T15:04:05Z07:00")
	}
	return doc
}

// Report summarizes one IndexAll run.
type Report struct {
	Indexed int
	Failed  int
}

// IndexAll writes every product with at most concurrency requests in flight.
// The first failure cancels the remaining requests.
func (ix *Indexer) IndexAll(ctx context.Context, products []entity.Product, concurrency int) (Report, error) {
	if ix.client == nil {
		return Report{}, ErrNotConfigured
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	var indexed, failed atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for _, p := range products {
		eg.Go(func() error {
			if err := ix.indexOne(ctx, p); err != nil {
				failed.Add(1)
				return fmt.Errorf("index %s: %w", p.ID, err)
			}
			indexed.Add(1)
			return nil
		})
	}
	err := eg.Wait()
	return Report{Indexed: int(indexed.Load()), Failed: int(failed.Load())}, err
}

func (ix *Indexer) indexOne(ctx context.Context, p entity.Product) error {
	body, err := json.Marshal(Document(p))
	if err != nil {
		return err
	}
	res, err := ix.client.Index(
		ix.IndexName(),
		bytes.NewReader(body),
		ix.client.Index.WithContext(ctx),
		ix.client.Index.WithDocumentID(p.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Refresh makes indexed documents visible to search.
func (ix *Indexer) Refresh(ctx context.Context) error {
	if ix.client == nil {
		return ErrNotConfigured
	}
	res, err := ix.client.Indices.Refresh(
		ix.client.Indices.Refresh.WithContext(ctx),
		ix.client.Indices.Refresh.WithIndex(ix.IndexName()),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}
