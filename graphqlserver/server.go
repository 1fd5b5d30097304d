// Package graphqlserver wires the schema to resolvers over the catalog.
package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/config"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
	"github.com/diyashah3011/SmartPriceMonitor/graphql"
	gqlmodels "github.com/diyashah3011/SmartPriceMonitor/graphql/models"
	gqlregistry "github.com/diyashah3011/SmartPriceMonitor/graphql/registry"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	db *gorm.DB
}

func (r *QueryResolver) engine() *engine.Engine {
	if config.AppConfig != nil {
		return engine.New(config.AppConfig.Sellers...)
	}
	return engine.New()
}

func (r *QueryResolver) catalog() ([]engine.Product, []engine.Category, error) {
	products, err := repository.GetProductRepository(r.db).Snapshots()
	if err != nil {
		return nil, nil, err
	}
	rows, err := repository.NewCategoryRepository(r.db).FindAll()
	if err != nil {
		return nil, nil, err
	}
	return products, repository.EngineCategories(rows), nil
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Category *string
	Platform *string
	Price    *string
	Sort     *string
	Search   *string
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductList, error) {
	products, categories, err := r.catalog()
	if err != nil {
		return nil, err
	}
	state := engine.FilterState{
		Category:   deref(args.Category),
		Platform:   deref(args.Platform),
		PriceRange: deref(args.Price),
		Sort:       engine.SortOrder(deref(args.Sort)),
		Search:     deref(args.Search),
	}
	eng := r.engine()
	result := eng.Query(products, categories, state)
	return toProductList(eng, result), nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID int32
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.ProductDetail, error) {
	p, err := repository.GetProductRepository(r.db).FindByID(uint(args.ID))
	if err == repository.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	eng := r.engine()
	snap := p.Snapshot()

	scores := make([]*gqlmodels.SellerScore, 0, len(snap.Offers))
	for _, seller := range sortedSellers(snap.Offers) {
		scores = append(scores, &gqlmodels.SellerScore{
			Seller: seller,
			Score:  int32(eng.SmartScore(&snap, seller)),
		})
	}
	return &gqlmodels.ProductDetail{
		Product:     toProduct(eng, &snap),
		SmartScores: scores,
	}, nil
}

func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.Category, error) {
	rows, err := repository.NewCategoryRepository(r.db).FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Category, len(rows))
	for i, c := range rows {
		out[i] = &gqlmodels.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ImageUrl:    c.ImageURL,
			Custom:      c.Custom,
		}
	}
	return out, nil
}

// SearchArgs matches the search query arguments.
type SearchArgs struct {
	Query string
}

func (r *QueryResolver) Search(ctx context.Context, args SearchArgs) (*gqlmodels.ProductList, error) {
	products, categories, err := r.catalog()
	if err != nil {
		return nil, err
	}
	eng := r.engine()
	result := eng.Filter(products, categories, engine.FilterState{Search: args.Query})
	return toProductList(eng, result), nil
}

// BestDealArgs matches the bestDeal query arguments.
type BestDealArgs struct {
	ID int32
}

func (r *QueryResolver) BestDeal(ctx context.Context, args BestDealArgs) (*gqlmodels.Deal, error) {
	p, err := repository.GetProductRepository(r.db).FindByID(uint(args.ID))
	if err == repository.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap := p.Snapshot()
	deal := r.engine().BestDeal(&snap)
	if deal.Seller == "" {
		return nil, nil
	}
	return &gqlmodels.Deal{Seller: deal.Seller, Score: int32(deal.Score)}, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
