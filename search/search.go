// Package search resolves free-text product queries. When an Elasticsearch
// host is configured the query goes to the index; otherwise the in-process
// matcher runs over the catalog snapshot, so the endpoint works without any
// search infrastructure.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

var (
	clientInstance *elasticsearch.Client
	clientOnce     sync.Once
)

// sharedClient builds the Elasticsearch client once. Nil when no host is
// configured or the client cannot be constructed.
func sharedClient() *elasticsearch.Client {
	clientOnce.Do(func() {
		host := os.Getenv("ELASTICSEARCH_HOST")
		if host == "" {
			return
		}
		client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
		if err != nil {
			return
		}
		clientInstance = client
	})
	return clientInstance
}

// Service answers product search queries.
type Service struct {
	client *elasticsearch.Client
	index  string
	eng    *engine.Engine
}

// NewService returns a Service backed by the shared Elasticsearch client when
// one is configured, and by eng's matcher otherwise.
func NewService(eng *engine.Engine) *Service {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "smartprice_catalog_product"
	}
	return &Service{client: sharedClient(), index: index, eng: eng}
}

// Search returns matching products in catalog order plus the source that
// answered ("elasticsearch" or "engine"). Index failures fall back to the
// engine matcher rather than erroring the request.
func (s *Service) Search(ctx context.Context, products []engine.Product, categories []engine.Category, query string) ([]engine.Product, string, error) {
	if s.client != nil {
		ids, err := s.queryIndex(ctx, query)
		if err == nil {
			return pickByID(products, ids), "elasticsearch", nil
		}
	}
	result := s.eng.Filter(products, categories, engine.FilterState{Search: query})
	return result, "engine", nil
}

// queryIndex runs a multi_match against the product index and returns hit ids
// in relevance order.
func (s *Service) queryIndex(ctx context.Context, query string) ([]uint, error) {
	body := map[string]interface{}{
		"size": 50,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "category^2", "description"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID float64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		if hit.Source.ID > 0 {
			ids = append(ids, uint(hit.Source.ID))
		}
	}
	return ids, nil
}

// pickByID maps index hits back onto catalog snapshots, keeping the index's
// relevance order and dropping stale ids.
func pickByID(products []engine.Product, ids []uint) []engine.Product {
	byID := make(map[uint]*engine.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	out := make([]engine.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}
