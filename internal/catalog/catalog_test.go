package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trendora/recommendation-service/internal/domain"
)

const trendingCSV = `Name,ReviewCount,Brand,ImageURL,Rating
Hot Item,120,BrandX,https://img.example.com/hot.jpg,4.5
Other Item,80,BrandY,https://img.example.com/other.jpg,4.1
`

const catalogCSV = `Name,Tags,ReviewCount,Brand,ImageURL,Rating
Hot Item,hot trending item,120,BrandX,https://img.example.com/hot.jpg,4.5
Other Item,other cool item,80,BrandY,https://img.example.com/other.jpg,4.1
Third Item,third thing,15,BrandZ,https://img.example.com/third.jpg,3.9
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cat, err := Load(
		writeTemp(t, "trending.csv", trendingCSV),
		writeTemp(t, "catalog.csv", catalogCSV),
	)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cat.Len() != 3 {
		t.Errorf("expected 3 catalog products, got %d", cat.Len())
	}
	if cat.TrendingLen() != 2 {
		t.Errorf("expected 2 trending products, got %d", cat.TrendingLen())
	}

	p, idx, ok := cat.FindExact("Other Item")
	if !ok {
		t.Fatal("expected to find Other Item")
	}
	if idx != 1 {
		t.Errorf("expected row index 1, got %d", idx)
	}
	if p.ReviewCount != 80 || p.Brand != "BrandY" || p.Rating != 4.1 {
		t.Errorf("unexpected product: %+v", p)
	}
	if p.Tags != "other cool item" {
		t.Errorf("unexpected tags: %q", p.Tags)
	}
}

func TestFindExactCoversAllProducts(t *testing.T) {
	cat, err := Load(
		writeTemp(t, "trending.csv", trendingCSV),
		writeTemp(t, "catalog.csv", catalogCSV),
	)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, p := range cat.All() {
		found, _, ok := cat.FindExact(p.Name)
		if !ok {
			t.Errorf("FindExact(%q) found nothing", p.Name)
			continue
		}
		if found.Name != p.Name {
			t.Errorf("FindExact(%q) returned %q", p.Name, found.Name)
		}
	}
}

func TestFindExactIsCaseSensitiveFirstMatch(t *testing.T) {
	cat := New([]domain.Product{
		{Name: "Dup", Brand: "first"},
		{Name: "Dup", Brand: "second"},
	})

	if _, _, ok := cat.FindExact("dup"); ok {
		t.Error("lookup must be case-sensitive")
	}
	p, idx, ok := cat.FindExact("Dup")
	if !ok || idx != 0 || p.Brand != "first" {
		t.Errorf("expected first match at index 0, got %+v at %d", p, idx)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("nope/trending.csv", "nope/catalog.csv")
	if err == nil {
		t.Fatal("expected error for missing source files")
	}
}

func TestLoadMissingTagsColumn(t *testing.T) {
	// The full catalog must carry Tags; trending may omit it.
	_, err := Load(
		writeTemp(t, "trending.csv", trendingCSV),
		writeTemp(t, "catalog.csv", trendingCSV),
	)
	if err == nil || !strings.Contains(err.Error(), "Tags") {
		t.Fatalf("expected missing Tags column error, got %v", err)
	}
}

func TestLoadMalformedNumericCell(t *testing.T) {
	bad := `Name,Tags,ReviewCount,Brand,ImageURL,Rating
Item,some tags,not-a-number,BrandX,https://img.example.com/x.jpg,4.5
`
	_, err := Load(
		writeTemp(t, "trending.csv", trendingCSV),
		writeTemp(t, "catalog.csv", bad),
	)
	if err == nil {
		t.Fatal("expected error for malformed ReviewCount")
	}
}

func TestTrendingBounds(t *testing.T) {
	cat := New([]domain.Product{{Name: "A"}, {Name: "B"}})

	if got := len(cat.Trending(8)); got != 2 {
		t.Errorf("expected clamp to 2, got %d", got)
	}
	if got := len(cat.Trending(1)); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := len(cat.Trending(-1)); got != 0 {
		t.Errorf("expected 0 for negative n, got %d", got)
	}
}
