package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	// Price is the selling price, MRP the list price shown struck through.
	Price       float64        `gorm:"not null" json:"price"`
	MRP         float64        `json:"mrp"`
	Stock       int            `json:"stock"`
	ImageURL    string         `json:"image_url"`
	CategoryID  uint           `gorm:"index" json:"category_id"`
	Category    Category       `gorm:"foreignKey:CategoryID" json:"category"`
	HasVariants bool           `json:"has_variants"`
	Variants    []VariantGroup `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// VariantGroup is one axis of differentiation, e.g. "Size".
type VariantGroup struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint            `gorm:"index" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Options   []VariantOption `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"options"`
}

// VariantOption carries per-option price/stock overrides. A zero Price means
// the option inherits the product price.
type VariantOption struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID uint    `gorm:"index" json:"group_id"`
	Value   string  `gorm:"not null" json:"value"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

var ErrNoVariantOptions = errors.New("product marked as having variants must carry at least one variant group with at least one option")

// ValidateVariants enforces the variant invariant before a product is saved.
func (p *Product) ValidateVariants() error {
	if !p.HasVariants {
		return nil
	}
	for _, g := range p.Variants {
		if len(g.Options) > 0 {
			return nil
		}
	}
	return ErrNoVariantOptions
}

// EffectivePrice resolves the unit price for a variant selection: the chosen
// option's price when it carries one, otherwise the product's own.
func (p *Product) EffectivePrice(selection map[string]string) float64 {
	if opt := p.findOption(selection); opt != nil && opt.Price > 0 {
		return opt.Price
	}
	return p.Price
}

// EffectiveStock resolves available stock the same way.
func (p *Product) EffectiveStock(selection map[string]string) int {
	if opt := p.findOption(selection); opt != nil {
		return opt.Stock
	}
	return p.Stock
}

func (p *Product) findOption(selection map[string]string) *VariantOption {
	if !p.HasVariants || len(selection) == 0 {
		return nil
	}
	for i := range p.Variants {
		g := &p.Variants[i]
		want, ok := selection[g.Name]
		if !ok {
			continue
		}
		for j := range g.Options {
			if g.Options[j].Value == want {
				return &g.Options[j]
			}
		}
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses runs of non-alphanumerics to
// single hyphens.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
