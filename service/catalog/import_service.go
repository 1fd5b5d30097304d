package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize       int
	DefaultCategory string
	Sellers         []string
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int
	Created     int
	Updated     int
	Skipped     int
	Warnings    []string
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

var staticColumns = map[string]bool{
	"id": true, "name": true, "category": true,
	"description": true, "image": true, "trending": true,
}

// offerColumns are the per-seller suffixes; a CSV column "amazon_price"
// feeds the amazon offer's price.
var offerColumns = map[string]bool{
	"mrp": true, "price": true, "rating": true,
	"delivery": true, "available": true, "url": true,
}

func knownColumns(sellers []string) map[string]bool {
	known := make(map[string]bool, len(staticColumns)+len(sellers)*len(offerColumns))
	for col := range staticColumns {
		known[col] = true
	}
	for _, s := range sellers {
		for suffix := range offerColumns {
			known[s+"_"+suffix] = true
		}
	}
	return known
}

// ImportProducts reads CSV data from r and upserts catalog products. Rows are
// matched on name (case-insensitive); matched rows update, the rest create.
func ImportProducts(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()

	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = "electronics"
	}
	if len(opts.Sellers) == 0 {
		opts.Sellers = engine.DefaultSellers
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	nameCol := -1
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
		if h == "name" {
			nameCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("CSV must contain a 'name' column")
	}

	result := &ImportResult{}

	known := knownColumns(opts.Sellers)
	for _, h := range headers {
		if !known[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	products := repository.NewProductRepository(db)
	existing, err := products.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	nameToID := make(map[string]uint, len(existing))
	for _, p := range existing {
		nameToID[strings.ToLower(p.Name)] = p.ID
	}

	startProcess := time.Now()
	var toCreate []*entity.Product
	var toUpdate []*entity.Product

	for ri, row := range rows {
		name := cell(row, nameCol)
		if name == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty name, skipping", ri+2))
			continue
		}
		p, warns := buildProduct(row, colIndex, name, opts)
		for _, w := range warns {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", ri+2, w))
		}
		if id, seen := nameToID[strings.ToLower(name)]; seen {
			p.ID = id
			toUpdate = append(toUpdate, p)
		} else {
			toCreate = append(toCreate, p)
		}
	}

	startDB := time.Now()
	if len(toCreate) > 0 {
		if err := db.Session(&gorm.Session{CreateBatchSize: opts.BatchSize}).Create(&toCreate).Error; err != nil {
			return nil, fmt.Errorf("insert products: %w", err)
		}
	}
	for _, p := range toUpdate {
		if err := products.Update(p); err != nil {
			return nil, fmt.Errorf("update product %d: %w", p.ID, err)
		}
	}
	result.DBTime = time.Since(startDB)

	result.Created = len(toCreate)
	result.Updated = len(toUpdate)
	result.ProcessTime = time.Since(startProcess)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}

func buildProduct(row []string, colIndex map[string]int, name string, opts ImportOptions) (*entity.Product, []string) {
	var warns []string

	p := &entity.Product{
		Name:        name,
		Category:    opts.DefaultCategory,
		Description: lookup(row, colIndex, "description"),
		Image:       lookup(row, colIndex, "image"),
	}
	if c := lookup(row, colIndex, "category"); c != "" {
		p.Category = strings.ToLower(c)
	}
	if t := lookup(row, colIndex, "trending"); t != "" {
		p.Trending = t == "1" || strings.EqualFold(t, "true")
	}

	offers := make(map[string]engine.Offer, len(opts.Sellers))
	for _, seller := range opts.Sellers {
		o, ok, w := buildOffer(row, colIndex, seller)
		warns = append(warns, w...)
		if ok {
			offers[seller] = o
		}
	}
	if len(offers) == 0 {
		warns = append(warns, "no seller offers found")
	}
	if err := p.SetOffers(offers); err != nil {
		warns = append(warns, err.Error())
	}
	return p, warns
}

// buildOffer assembles one seller's offer from the row. The discount is
// derived from MRP and price, never read from the file, and an offer with a
// non-positive price is kept but marked unavailable.
func buildOffer(row []string, colIndex map[string]int, seller string) (engine.Offer, bool, []string) {
	var warns []string

	priceRaw := lookup(row, colIndex, seller+"_price")
	if priceRaw == "" {
		return engine.Offer{}, false, nil
	}
	price, err := strconv.Atoi(priceRaw)
	if err != nil {
		return engine.Offer{}, false, []string{fmt.Sprintf("%s_price %q: not a number", seller, priceRaw)}
	}

	o := engine.Offer{
		Price:     price,
		MRP:       price,
		Available: true,
		Delivery:  lookup(row, colIndex, seller+"_delivery"),
		URL:       lookup(row, colIndex, seller+"_url"),
	}
	if o.Delivery == "" {
		o.Delivery = "3 days"
	}
	if raw := lookup(row, colIndex, seller+"_mrp"); raw != "" {
		if mrp, err := strconv.Atoi(raw); err == nil && mrp >= price {
			o.MRP = mrp
		} else {
			warns = append(warns, fmt.Sprintf("%s_mrp %q: ignored", seller, raw))
		}
	}
	if raw := lookup(row, colIndex, seller+"_rating"); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && r >= 0 && r <= 5 {
			o.Rating = r
		} else {
			warns = append(warns, fmt.Sprintf("%s_rating %q: ignored", seller, raw))
		}
	}
	if raw := lookup(row, colIndex, seller+"_available"); raw != "" {
		o.Available = raw == "1" || strings.EqualFold(raw, "true")
	}
	if o.Price <= 0 {
		o.Available = false
	}
	o.Discount = DeriveDiscount(o.MRP, o.Price)
	return o, true, warns
}

// DeriveDiscount computes the rounded percentage off MRP, never negative.
func DeriveDiscount(mrp, price int) int {
	if mrp <= 0 {
		return 0
	}
	d := int(math.Round(float64(mrp-price) / float64(mrp) * 100))
	if d < 0 {
		return 0
	}
	return d
}

func lookup(row []string, colIndex map[string]int, col string) string {
	i, ok := colIndex[col]
	if !ok {
		return ""
	}
	return cell(row, i)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
