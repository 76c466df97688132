package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/trendora/recommendation-service/internal/domain"
)

// Catalog is the immutable in-memory product set. Loaded once at boot, never
// written afterwards, so it is safe to share across requests without locking.
type Catalog struct {
	products []domain.Product
	trending []domain.Product
}

// Load reads the trending subset and the full clean catalog. Either source
// missing or malformed is fatal to the caller: the process must not serve
// without a catalog. The trending file may omit the Tags column; the full
// catalog must carry it because the lexical engine vectorizes it.
func Load(trendingPath, catalogPath string) (*Catalog, error) {
	trending, err := readProducts(trendingPath, false)
	if err != nil {
		return nil, fmt.Errorf("load trending products %s: %w", trendingPath, err)
	}
	products, err := readProducts(catalogPath, true)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", catalogPath, err)
	}
	return &Catalog{products: products, trending: trending}, nil
}

// New builds a catalog directly from product slices. Used by tests and by
// callers that source products elsewhere.
func New(products []domain.Product) *Catalog {
	return &Catalog{products: products, trending: products}
}

// FindExact returns the first catalog row whose name matches exactly
// (case-sensitive) together with its row index. Names are not unique; callers
// accept the arbitrary-first-match semantics.
func (c *Catalog) FindExact(name string) (domain.Product, int, bool) {
	for i, p := range c.products {
		if p.Name == name {
			return p, i, true
		}
	}
	return domain.Product{}, -1, false
}

// All returns the full catalog in load order. Callers must treat the slice as
// read-only.
func (c *Catalog) All() []domain.Product {
	return c.products
}

// Trending returns up to n rows of the trending subset, in source order.
func (c *Catalog) Trending(n int) []domain.Product {
	if n < 0 {
		n = 0
	}
	if n > len(c.trending) {
		n = len(c.trending)
	}
	return c.trending[:n]
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) TrendingLen() int {
	return len(c.trending)
}

func readProducts(path string, requireTags bool) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseProducts(f, requireTags)
}

// parseProducts maps columns by header name so source files may carry extra
// columns in any order. A row missing a required column fails the whole load;
// rows are never silently skipped.
func parseProducts(r io.Reader, requireTags bool) ([]domain.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	required := []string{"Name", "ReviewCount", "Brand", "ImageURL", "Rating"}
	if requireTags {
		required = append(required, "Tags")
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var products []domain.Product
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		p, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func parseRow(record []string, cols map[string]int) (domain.Product, error) {
	field := func(name string) (string, error) {
		idx, ok := cols[name]
		if !ok {
			return "", nil
		}
		if idx >= len(record) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	var p domain.Product
	var err error
	if p.Name, err = field("Name"); err != nil {
		return p, err
	}
	if p.Tags, err = field("Tags"); err != nil {
		return p, err
	}
	if p.Brand, err = field("Brand"); err != nil {
		return p, err
	}
	if p.ImageURL, err = field("ImageURL"); err != nil {
		return p, err
	}

	// Numeric cells may be empty (treated as zero) but never garbage.
	raw, err := field("ReviewCount")
	if err != nil {
		return p, err
	}
	if raw != "" {
		// Some catalog exports write counts as floats ("120.0").
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("parse ReviewCount %q: %w", raw, err)
		}
		p.ReviewCount = int(v)
	}

	raw, err = field("Rating")
	if err != nil {
		return p, err
	}
	if raw != "" {
		if p.Rating, err = strconv.ParseFloat(raw, 64); err != nil {
			return p, fmt.Errorf("parse Rating %q: %w", raw, err)
		}
	}
	return p, nil
}
