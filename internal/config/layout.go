package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes the store hierarchy to provision: one root category, one
// website, one store group and its ordered stores. The first store becomes
// the group's default store.
type Layout struct {
	RootCategory RootCategoryLayout `yaml:"root_category"`
	Website      WebsiteLayout      `yaml:"website"`
	Group        GroupLayout        `yaml:"group"`
	Stores       []StoreLayout      `yaml:"stores"`
}

// RootCategoryLayout names the root category and where it sits in the tree.
type RootCategoryLayout struct {
	Name     string `yaml:"name"`
	ParentID int64  `yaml:"parent_id"`
	Level    int    `yaml:"level"`
	Position int    `yaml:"position"`
}

// WebsiteLayout identifies the website by code.
type WebsiteLayout struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	SortOrder int    `yaml:"sort_order"`
}

// GroupLayout names the store group.
type GroupLayout struct {
	Name string `yaml:"name"`
}

// StoreLayout describes one locale store. In a layout file, active defaults
// to true and a zero sort_order becomes the store's 1-based list position.
type StoreLayout struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	Active    bool   `yaml:"active"`
	SortOrder int    `yaml:"sort_order"`
}

// UnmarshalYAML decodes a store entry with Active defaulting to true.
func (s *StoreLayout) UnmarshalYAML(node *yaml.Node) error {
	type plain StoreLayout
	v := plain{Active: true}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = StoreLayout(v)
	return nil
}

// DefaultLayout returns the built-in B2B hierarchy.
func DefaultLayout() Layout {
	return Layout{
		RootCategory: RootCategoryLayout{
			Name:     "B2B Root Category",
			ParentID: 1,
			Level:    1,
			Position: 2,
		},
		Website: WebsiteLayout{Code: "b2b", Name: "B2B", SortOrder: 1},
		Group:   GroupLayout{Name: "B2B Store"},
		Stores: []StoreLayout{
			{Code: "b2b_ar", Name: "B2B Arabic Store", Active: true, SortOrder: 1},
			{Code: "b2b_en", Name: "B2B English Store", Active: true, SortOrder: 2},
		},
	}
}

// LoadLayout returns DefaultLayout when path is empty; otherwise it decodes
// the YAML file at path over the defaults and validates the result. A file
// that lists stores replaces the default store list entirely.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}

	var file Layout
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if file.Website.Code != "" && file.Website.Name == "" {
		return Layout{}, fmt.Errorf("invalid layout %s: website.name is required when website.code is set", path)
	}
	for i := range file.Stores {
		if file.Stores[i].SortOrder == 0 {
			file.Stores[i].SortOrder = i + 1
		}
	}
	layout.merge(file)

	if err := layout.Validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return layout, nil
}

func (l *Layout) merge(o Layout) {
	if o.RootCategory.Name != "" {
		l.RootCategory.Name = o.RootCategory.Name
	}
	if o.RootCategory.ParentID != 0 {
		l.RootCategory.ParentID = o.RootCategory.ParentID
	}
	if o.RootCategory.Level != 0 {
		l.RootCategory.Level = o.RootCategory.Level
	}
	if o.RootCategory.Position != 0 {
		l.RootCategory.Position = o.RootCategory.Position
	}
	if o.Website.Code != "" {
		l.Website.Code = o.Website.Code
	}
	if o.Website.Name != "" {
		l.Website.Name = o.Website.Name
	}
	if o.Website.SortOrder != 0 {
		l.Website.SortOrder = o.Website.SortOrder
	}
	if o.Group.Name != "" {
		l.Group.Name = o.Group.Name
	}
	if len(o.Stores) > 0 {
		l.Stores = o.Stores
	}
}

// Validate checks that every entity is identifiable and store codes are unique.
func (l Layout) Validate() error {
	var errs []error
	if l.RootCategory.Name == "" {
		errs = append(errs, errors.New("root_category.name is required"))
	}
	if l.RootCategory.ParentID <= 0 {
		errs = append(errs, errors.New("root_category.parent_id must be positive"))
	}
	if l.RootCategory.Level < 1 {
		errs = append(errs, errors.New("root_category.level must be at least 1"))
	}
	if l.Website.Code == "" {
		errs = append(errs, errors.New("website.code is required"))
	}
	if l.Group.Name == "" {
		errs = append(errs, errors.New("group.name is required"))
	}
	if len(l.Stores) == 0 {
		errs = append(errs, errors.New("at least one store is required"))
	}
	seen := make(map[string]bool, len(l.Stores))
	for i, s := range l.Stores {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("stores[%d].name is required", i))
		}
		if s.Code == "" {
			errs = append(errs, fmt.Errorf("stores[%d].code is required", i))
			continue
		}
		if seen[s.Code] {
			errs = append(errs, fmt.Errorf("stores[%d].code %q is duplicated", i, s.Code))
		}
		seen[s.Code] = true
	}
	return errors.Join(errs...)
}
