package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnwards/storeseed/internal/config"
)

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return path
}

func TestDefaultLayout(t *testing.T) {
	l := config.DefaultLayout()

	if err := l.Validate(); err != nil {
		t.Fatalf("default layout invalid: %v", err)
	}
	if l.RootCategory.Name != "B2B Root Category" {
		t.Errorf("root category = %q", l.RootCategory.Name)
	}
	if l.RootCategory.ParentID != 1 || l.RootCategory.Level != 1 {
		t.Errorf("root category parent/level = %d/%d, want 1/1", l.RootCategory.ParentID, l.RootCategory.Level)
	}
	if l.Website.Code != "b2b" {
		t.Errorf("website code = %q, want %q", l.Website.Code, "b2b")
	}
	if len(l.Stores) != 2 || l.Stores[0].Code != "b2b_ar" || l.Stores[1].Code != "b2b_en" {
		t.Errorf("unexpected stores: %+v", l.Stores)
	}
}

func TestLoadLayoutEmptyPath(t *testing.T) {
	l, err := config.LoadLayout("")
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if l.Group.Name != "B2B Store" {
		t.Errorf("group name = %q, want default", l.Group.Name)
	}
}

func TestLoadLayoutOverridesDefaults(t *testing.T) {
	path := writeLayout(t, `
website:
  code: wholesale
  name: Wholesale
group:
  name: Wholesale Store
stores:
  - code: ws_fr
    name: Wholesale French
    active: true
    sort_order: 1
`)

	l, err := config.LoadLayout(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if l.Website.Code != "wholesale" {
		t.Errorf("website code = %q, want %q", l.Website.Code, "wholesale")
	}
	if l.Website.SortOrder != 1 {
		t.Errorf("website sort order = %d, want default 1", l.Website.SortOrder)
	}
	if l.RootCategory.Name != "B2B Root Category" {
		t.Errorf("root category = %q, want default", l.RootCategory.Name)
	}
	if len(l.Stores) != 1 || l.Stores[0].Code != "ws_fr" || !l.Stores[0].Active {
		t.Errorf("unexpected stores: %+v", l.Stores)
	}
}

func TestLoadLayoutRejectsDuplicateStoreCodes(t *testing.T) {
	path := writeLayout(t, `
stores:
  - code: dup
    name: One
  - code: dup
    name: Two
`)

	_, err := config.LoadLayout(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "duplicated") {
		t.Errorf("error = %v, want mention of duplicated code", err)
	}
}

func TestLoadLayoutStoreDefaults(t *testing.T) {
	path := writeLayout(t, `
stores:
  - code: ws_fr
    name: FR
  - code: ws_de
    name: DE
    active: false
    sort_order: 7
`)

	l, err := config.LoadLayout(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if len(l.Stores) != 2 {
		t.Fatalf("stores = %+v, want 2", l.Stores)
	}
	if !l.Stores[0].Active || l.Stores[0].SortOrder != 1 {
		t.Errorf("store without active/sort_order = %+v, want active with sort order 1", l.Stores[0])
	}
	if l.Stores[1].Active || l.Stores[1].SortOrder != 7 {
		t.Errorf("explicit store = %+v, want inactive with sort order 7", l.Stores[1])
	}
}

func TestLoadLayoutWebsiteCodeRequiresName(t *testing.T) {
	path := writeLayout(t, `
website:
  code: wholesale
`)

	_, err := config.LoadLayout(path)
	if err == nil {
		t.Fatal("expected error when website code is set without a name")
	}
	if !strings.Contains(err.Error(), "website.name") {
		t.Errorf("error = %v, want mention of website.name", err)
	}
}

func TestLoadLayoutRequiresStoreName(t *testing.T) {
	path := writeLayout(t, `
stores:
  - code: ws_fr
`)

	_, err := config.LoadLayout(path)
	if err == nil || !strings.Contains(err.Error(), "stores[0].name") {
		t.Errorf("error = %v, want stores[0].name is required", err)
	}
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := config.LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadLayoutMalformedYAML(t *testing.T) {
	path := writeLayout(t, "stores: [unterminated")

	if _, err := config.LoadLayout(path); err == nil {
		t.Fatal("expected parse error")
	}
}
