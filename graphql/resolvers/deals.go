package resolvers

import (
	"context"

	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	productService "storefront.GO/service/product"
)

func init() {
	graphql.RegisterSchemaExtension(`extend type Query {
  activeDeals: [Product!]!
}`)
}

// ActiveDeals lists products whose deal is still running, soonest ending first.
func (r *QueryResolver) ActiveDeals(ctx context.Context) ([]*gqlmodels.Product, error) {
	if _, err := r.store.Catalog(); err != nil {
		return nil, err
	}
	deals := productService.ActiveDeals(r.store.Products(), r.now(), r.phone)
	out := make([]*gqlmodels.Product, 0, len(deals))
	for _, d := range deals {
		out = append(out, toProduct(d))
	}
	return out, nil
}
