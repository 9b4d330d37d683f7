// Package importer loads catalog products from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-terminal/internal/domain"
)

// Header lists the columns an import file must carry. Column order is free.
var Header = []string{"id", "name", "sku", "category", "price", "cost", "stock", "isService", "image"}

var required = []string{"id", "name", "sku", "category", "price"}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// CSVImporter validates every row before writing anything, then upserts products by id.
// Categories referenced by the file but missing from the store are created.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryStore
	logger     *zap.Logger
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryStore, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Run imports the file and returns the number of products written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("%w: missing column %q", domain.ErrInvalidInput, col)
		}
	}

	var products []domain.Product
	seen := map[string]int{}
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}
		p, err := parseRow(record, index)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", line, err)
		}
		if prev, dup := seen[p.ID]; dup {
			return 0, fmt.Errorf("row %d: %w: id %q already used on row %d", line, domain.ErrInvalidInput, p.ID, prev)
		}
		seen[p.ID] = line
		products = append(products, p)
	}

	if i.categories != nil {
		if err := i.ensureCategories(ctx, products); err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, p := range products {
		if _, err := i.products.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.ID, err)
		}
		imported++
	}
	i.logger.Info("importer: products imported", zap.Int("count", imported))
	return imported, nil
}

func (i *CSVImporter) ensureCategories(ctx context.Context, products []domain.Product) error {
	existing, err := i.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	known := make(map[string]bool, len(existing))
	next := 0
	for _, c := range existing {
		known[c.ID] = true
		if c.Position >= next {
			next = c.Position + 1
		}
	}
	for _, p := range products {
		if known[p.Category] {
			continue
		}
		c := domain.Category{ID: p.Category, Name: displayName(p.Category), Position: next}
		if _, err := i.categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("create category %q: %w", c.ID, err)
		}
		i.logger.Info("importer: category created", zap.String("category", c.ID))
		known[c.ID] = true
		next++
	}
	return nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:       pick(record, index, "id"),
		Name:     pick(record, index, "name"),
		SKU:      pick(record, index, "sku"),
		Category: strings.ToLower(pick(record, index, "category")),
		Image:    pick(record, index, "image"),
	}
	for col, v := range map[string]string{"id": p.ID, "name": p.Name, "sku": p.SKU, "category": p.Category} {
		if v == "" {
			return domain.Product{}, fmt.Errorf("%w: %s required", domain.ErrInvalidInput, col)
		}
	}
	if p.Category == domain.AllCategories {
		return domain.Product{}, fmt.Errorf("%w: category %q is reserved", domain.ErrInvalidInput, p.Category)
	}

	price, err := parseMoney(pick(record, index, "price"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	p.Price = price

	if raw := pick(record, index, "cost"); raw != "" {
		cost, err := parseMoney(raw)
		if err != nil {
			return domain.Product{}, fmt.Errorf("cost: %w", err)
		}
		p.Cost = &cost
	}
	if raw := pick(record, index, "stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return domain.Product{}, fmt.Errorf("%w: stock %q", domain.ErrInvalidInput, raw)
		}
		p.Stock = stock
	}
	if raw := pick(record, index, "isService"); raw != "" {
		svc, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: isService %q", domain.ErrInvalidInput, raw)
		}
		p.IsService = svc
	}
	return p, nil
}

func parseMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: value required", domain.ErrInvalidInput)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is negative", domain.ErrInvalidInput, raw)
	}
	return d, nil
}

func displayName(id string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(id))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
