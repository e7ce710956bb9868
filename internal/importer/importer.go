package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog exports and inserts/updates products.
//
// Expected columns: id, title, description, price, sku, color, category,
// sizes, image. sizes is "UK7:10;UK8:4". Rows with an empty sku but an
// image continue the product above them.
type CSVImporter struct {
	reader *csv.Reader
	repo   ProductWriter
	logger zerolog.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger zerolog.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		repo:   repo,
		logger: logger,
	}
}

type csvRow struct {
	line      int
	id        string
	title     string
	desc      string
	price     string
	sku       string
	color     string
	category  string
	sizes     string
	imageURLs []string
}

// Run parses CSV rows and upserts products grouped by sku.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["sku"]; !ok {
		return 0, errors.New("read headers: sku column missing")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.line = line

		if row.sku != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil {
			current.imageURLs = append(current.imageURLs, row.imageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.title == "" || row.price == "" {
		return fmt.Errorf("row %d sku %q: title and price required: %w", row.line, row.sku, domain.ErrInvalidInput)
	}
	price, err := decimal.NewFromString(row.price)
	if err != nil || price.IsNegative() {
		return fmt.Errorf("row %d sku %q: invalid price %q: %w", row.line, row.sku, row.price, domain.ErrInvalidInput)
	}
	sizes, err := parseSizes(row.sizes)
	if err != nil {
		return fmt.Errorf("row %d sku %q: %w", row.line, row.sku, err)
	}

	images := row.imageURLs
	if images == nil {
		images = []string{}
	}

	p, err := i.repo.Upsert(ctx, domain.Product{
		ID:          row.id,
		Title:       row.title,
		Description: row.desc,
		Price:       price,
		SKU:         row.sku,
		Color:       row.color,
		Category:    row.category,
		Sizes:       sizes,
		Images:      images,
	})
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.sku, err)
	}
	i.logger.Debug().Str("sku", row.sku).Str("product_id", p.ID).Msg("product imported")
	return nil
}

// parseSizes reads "UK7:10;UK8:4". A size without a count gets zero stock.
func parseSizes(raw string) (map[string]int, error) {
	sizes := make(map[string]int)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, count, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty size name in %q: %w", raw, domain.ErrInvalidInput)
		}
		n := 0
		if count = strings.TrimSpace(count); count != "" {
			v, err := strconv.Atoi(count)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("stock for size %s %q: %w", name, count, domain.ErrInvalidInput)
			}
			n = v
		}
		sizes[name] = n
	}
	return sizes, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		id:       pick(record, index, "id"),
		title:    pick(record, index, "title"),
		desc:     pick(record, index, "description"),
		price:    pick(record, index, "price"),
		sku:      pick(record, index, "sku"),
		color:    pick(record, index, "color"),
		category: pick(record, index, "category"),
		sizes:    pick(record, index, "sizes"),
	}
	imageURL := pick(record, index, "image")
	if row.sku == "" && imageURL == "" {
		return nil
	}
	if imageURL != "" {
		row.imageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
