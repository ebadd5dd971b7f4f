package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront.GO/model/entity"
	"storefront.GO/service/query"
)

const testCatalogJSON = `{
  "categories": ["Productivity", "Design"],
  "products": [
    {"id": "1", "name": "Test Product 1", "description": "Test description 1", "price": 50, "category": "Productivity", "tags": ["test", "productivity"], "rating": 4.5, "reviews": 100, "lastUpdated": "2024-01-15"},
    {"id": "2", "name": "Test Product 2", "description": "Test description 2", "price": 100, "category": "Design", "tags": ["test", "design"], "rating": 4.0, "reviews": 50, "lastUpdated": "2024-01-20"}
  ]
}`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	queryText, queryCategory, querySort, queryTags, queryJSON = "", "", string(entity.SortNameAsc), nil, false
	queryMin, queryMax = entity.DefaultPriceMin, entity.DefaultPriceMax
	catalogStrict = false

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogValidate(t *testing.T) {
	path := writeCatalog(t, "catalog.json", testCatalogJSON)
	out, err := run(t, "catalog:validate", "--file", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK: 2 products, 2 categories, 3 tags") {
		t.Errorf("output = %q", out)
	}

	bad := writeCatalog(t, "bad.json", `{"categories": [], "products": [{"id": "1"}]}`)
	if _, err := run(t, "catalog:validate", "--file", bad); err == nil {
		t.Error("want error for invalid catalog")
	}
}

func TestCatalogValidate_CSV(t *testing.T) {
	csv := "id,name,description,price,category,tags,rating,reviews,lastUpdated\n" +
		"1,Test Product 1,Test description 1,50,Productivity,test|productivity,4.5,100,2024-01-15\n"
	path := writeCatalog(t, "catalog.csv", csv)
	out, err := run(t, "catalog:validate", "--file", path)
	if err != nil {
		t.Fatalf("validate csv: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK: 1 products, 1 categories, 2 tags") {
		t.Errorf("output = %q", out)
	}
}

func TestCatalogQuery(t *testing.T) {
	path := writeCatalog(t, "catalog.json", testCatalogJSON)

	out, err := run(t, "catalog:query", "--file", path, "--json", "--sort", "price-desc")
	if err != nil {
		t.Fatalf("query: %v\n%s", err, out)
	}
	var res query.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.TotalCount != 2 || res.Products[0].ID != "2" {
		t.Errorf("result = %+v", res)
	}

	out, err = run(t, "catalog:query", "--file", path, "-q", "test product 1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Test Product 1") || strings.Contains(out, "Test Product 2") || !strings.Contains(out, "1 of 2 products") {
		t.Errorf("table = %q", out)
	}

	if _, err := run(t, "catalog:query", "--file", path, "--sort", "bogus"); err == nil {
		t.Error("want error for unknown sort")
	}
}

func TestCatalogTags(t *testing.T) {
	path := writeCatalog(t, "catalog.json", testCatalogJSON)
	out, err := run(t, "catalog:tags", "--file", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "design\nproductivity\ntest\n" {
		t.Errorf("tags = %q", out)
	}
}
