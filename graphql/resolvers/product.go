package resolvers

import (
	"context"

	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/model/entity"
	productService "storefront.GO/service/product"
	"storefront.GO/service/query"
	"storefront.GO/service/session"
)

// Products runs the query engine. Without a filter argument a session-bound
// request reuses the session's memoized result; a filter argument is merged
// onto the session (or default) state for this query only.
func (r *QueryResolver) Products(ctx context.Context, args graphql.ProductsArgs) (*gqlmodels.ProductList, error) {
	if _, err := r.store.Catalog(); err != nil {
		return nil, err
	}
	patch := args.Filter.Patch()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	sess, err := r.session(ctx)
	if err != nil {
		return nil, err
	}

	var (
		state entity.FilterState
		res   query.Result
	)
	switch {
	case sess != nil && patch.Empty():
		state = sess.Filters()
		res = sess.Result()
	case sess != nil:
		state = patch.Apply(sess.Filters())
		res = query.Run(r.store.Products(), state)
	default:
		state = patch.Apply(entity.DefaultFilterState())
		res = query.Run(r.store.Products(), state)
	}

	page, info := query.Paginate(res.Products, int(args.PageSize), int(args.CurrentPage))
	now := r.now()
	items := make([]*gqlmodels.Product, 0, len(page))
	for _, p := range page {
		items = append(items, toProduct(productService.NewDetail(p, now, r.phone)))
	}
	return &gqlmodels.ProductList{
		Items:      items,
		TotalCount: int32(res.TotalCount),
		PageInfo:   toPageInfo(info),
		Filters:    toFilterState(state),
		Heading:    session.Heading(state),
	}, nil
}

// Product returns nil for an unknown id.
func (r *QueryResolver) Product(ctx context.Context, args graphql.ProductArgs) (*gqlmodels.Product, error) {
	if _, err := r.store.Catalog(); err != nil {
		return nil, err
	}
	p, ok := r.store.Product(string(args.ID))
	if !ok {
		return nil, nil
	}
	return toProduct(productService.NewDetail(p, r.now(), r.phone)), nil
}
