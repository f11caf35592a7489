// Package shop is the student-facing storefront: a catalog of in-stock items, the order
// placement flow and the confirmation ticket.
package shop

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/shopspring/decimal"
)

// Group is one purchasable uniform card: every variant sharing a (type, gender).
// Variants are ordered XS..XXL.
type Group struct {
	Type     model.UniformType
	Gender   model.Gender
	Variants []model.UniformVariant
}

// Key is the stable catalog key of the group, e.g. "pe-female".
func (g Group) Key() string {
	short := strings.TrimSuffix(string(g.Type), " Uniform")
	return strings.ToLower(short + "-" + string(g.Gender))
}

func (g Group) Sizes() []model.Size {
	out := make([]model.Size, 0, len(g.Variants))
	for _, v := range g.Variants {
		out = append(out, v.Size)
	}
	return out
}

// Variant returns the variant of the given size.
func (g Group) Variant(size model.Size) (model.UniformVariant, bool) {
	for _, v := range g.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return model.UniformVariant{}, false
}

// Product is the parent product shown on the card (the first variant's).
func (g Group) Product() *model.Product {
	for _, v := range g.Variants {
		if v.Product != nil {
			return v.Product
		}
	}
	return nil
}

// GroupVariants groups variants by (type, gender), groups ordered by type then gender.
func GroupVariants(variants []model.UniformVariant) []Group {
	index := map[string]int{}
	var groups []Group
	for _, v := range variants {
		k := string(v.Type) + "\x00" + string(v.Gender)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Type: v.Type, Gender: v.Gender})
		}
		groups[i].Variants = append(groups[i].Variants, v)
	}
	for i := range groups {
		vs := groups[i].Variants
		sort.SliceStable(vs, func(a, b int) bool { return vs[a].Size.Rank() < vs[b].Size.Rank() })
	}
	sort.SliceStable(groups, func(a, b int) bool {
		ta, tb := rankOf(model.UniformTypes, groups[a].Type), rankOf(model.UniformTypes, groups[b].Type)
		if ta != tb {
			return ta < tb
		}
		return rankOf(model.Genders, groups[a].Gender) < rankOf(model.Genders, groups[b].Gender)
	})
	return groups
}

func rankOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return len(values)
}

// Item is one catalog card: a plain product or a uniform group.
type Item struct {
	Product *model.Product
	Group   *Group
}

func (it Item) Key() string {
	if it.Group != nil {
		return it.Group.Key()
	}
	return strconv.FormatInt(it.Product.ID, 10)
}

func (it Item) Name() string {
	if it.Group != nil {
		return fmt.Sprintf("%s (%s)", it.Group.Type, it.Group.Gender)
	}
	return it.Product.Name
}

func (it Item) IsUniform() bool {
	return it.Group != nil
}

// Price of the card's parent product.
func (it Item) Price() decimal.Decimal {
	if p := it.parent(); p != nil {
		return p.Price
	}
	return decimal.Zero
}

// Stock of the card's parent product. Per-variant quantities are display only.
func (it Item) Stock() int {
	if p := it.parent(); p != nil {
		return p.Quantity
	}
	return 0
}

func (it Item) parent() *model.Product {
	if it.Group != nil {
		return it.Group.Product()
	}
	return it.Product
}

// BuildCatalog lists in-stock non-uniform products followed by uniform groups whose
// product is in stock. Uniform products without variants are offered as plain products.
func BuildCatalog(products []model.Product, variants []model.UniformVariant) []Item {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	hasVariants := map[int64]bool{}
	stocked := make([]model.UniformVariant, 0, len(variants))
	for _, v := range variants {
		p, ok := byID[v.ProductID]
		if !ok {
			continue
		}
		hasVariants[p.ID] = true
		if !p.InStock() {
			continue
		}
		pc := p
		v.Product = &pc
		stocked = append(stocked, v)
	}

	var items []Item
	for _, p := range products {
		if !p.InStock() || hasVariants[p.ID] {
			continue
		}
		pc := p
		items = append(items, Item{Product: &pc})
	}
	for _, g := range GroupVariants(stocked) {
		gc := g
		items = append(items, Item{Group: &gc})
	}
	return items
}

// Find looks an item up by key, case-insensitively.
func Find(items []Item, key string) (Item, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, it := range items {
		if it.Key() == key {
			return it, true
		}
	}
	return Item{}, false
}
