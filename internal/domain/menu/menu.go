// Package menu holds the menu content model served to the site: localized
// categories and items fetched from the content backend or the embedded
// fallback dataset.
package menu

import "sort"

// PriceOnRequest is the sentinel price for items quoted individually
// (e.g. daily catch, truffle dishes).
const PriceOnRequest = 0

// Category groups menu items. Slug is unique and used as the grouping key;
// Order defines the render sequence and is stable across locales.
type Category struct {
	ID          uint   `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int    `json:"order" yaml:"order"`
}

// Item is a single dish. PriceCents of 0 means "price on request".
type Item struct {
	ID           uint     `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	PriceCents   int      `json:"price" yaml:"price"`
	CategorySlug string   `json:"category" yaml:"category"`
	Allergens    []string `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	Available    bool     `json:"available" yaml:"available"`
	Special      bool     `json:"special" yaml:"special"`
}

// PricedOnRequest reports whether the item has no fixed price.
func (i Item) PricedOnRequest() bool {
	return i.PriceCents == PriceOnRequest
}

// Menu is the resolved content for one locale.
type Menu struct {
	Locale     string     `json:"locale" yaml:"locale"`
	Categories []Category `json:"categories" yaml:"categories"`
	Items      []Item     `json:"items" yaml:"items"`
}

// Normalized returns a copy with categories sorted by display order and items
// filtered to available ones. Unavailable items must never reach a caller.
func (m Menu) Normalized() Menu {
	out := Menu{
		Locale:     m.Locale,
		Categories: make([]Category, len(m.Categories)),
		Items:      make([]Item, 0, len(m.Items)),
	}
	copy(out.Categories, m.Categories)
	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].Order < out.Categories[j].Order
	})
	for _, item := range m.Items {
		if item.Available {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// CategoryMenu is a category together with its available items, in order.
type CategoryMenu struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// GroupedByCategory returns the normalized menu grouped per category. Items
// referencing an unknown category slug are dropped rather than misfiled.
func (m Menu) GroupedByCategory() []CategoryMenu {
	normalized := m.Normalized()

	index := make(map[string]int, len(normalized.Categories))
	groups := make([]CategoryMenu, len(normalized.Categories))
	for i, cat := range normalized.Categories {
		index[cat.Slug] = i
		groups[i] = CategoryMenu{Category: cat, Items: []Item{}}
	}

	for _, item := range normalized.Items {
		if i, ok := index[item.CategorySlug]; ok {
			groups[i].Items = append(groups[i].Items, item)
		}
	}
	return groups
}
