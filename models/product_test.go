package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizedProduct() *Product {
	return &Product{
		Name:        "Face Wash",
		Price:       299,
		Stock:       10,
		HasVariants: true,
		Variants: []VariantGroup{{
			Name: "Size",
			Options: []VariantOption{
				{Value: "100ml"}, // inherits product price
				{Value: "200ml", Price: 499, Stock: 3},
			},
		}},
	}
}

func TestEffectivePrice(t *testing.T) {
	p := sizedProduct()

	testCases := []struct {
		name      string
		selection map[string]string
		want      float64
	}{
		{name: "no selection", selection: nil, want: 299},
		{name: "option with override", selection: map[string]string{"Size": "200ml"}, want: 499},
		{name: "option inheriting product price", selection: map[string]string{"Size": "100ml"}, want: 299},
		{name: "unknown option falls back", selection: map[string]string{"Size": "5l"}, want: 299},
		{name: "unknown group falls back", selection: map[string]string{"Colour": "red"}, want: 299},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.EffectivePrice(tc.selection))
		})
	}
}

func TestEffectiveStock(t *testing.T) {
	p := sizedProduct()
	assert.Equal(t, 10, p.EffectiveStock(nil))
	assert.Equal(t, 3, p.EffectiveStock(map[string]string{"Size": "200ml"}))

	plain := &Product{Stock: 7}
	assert.Equal(t, 7, plain.EffectiveStock(map[string]string{"Size": "200ml"}))
}

func TestValidateVariants(t *testing.T) {
	assert.NoError(t, sizedProduct().ValidateVariants())
	assert.NoError(t, (&Product{HasVariants: false}).ValidateVariants())

	empty := &Product{HasVariants: true}
	assert.ErrorIs(t, empty.ValidateVariants(), ErrNoVariantOptions)

	groupNoOptions := &Product{HasVariants: true, Variants: []VariantGroup{{Name: "Size"}}}
	assert.ErrorIs(t, groupNoOptions.ValidateVariants(), ErrNoVariantOptions)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "vitamin-c-serum", Slugify("Vitamin C Serum"))
	assert.Equal(t, "spf-50-sunscreen", Slugify("  SPF-50++ Sunscreen! "))
	assert.Equal(t, "a1-b2", Slugify("A1 & B2"))
}

func TestSegmentFor(t *testing.T) {
	testCases := []struct {
		orders int
		spent  float64
		want   string
	}{
		{orders: 0, spent: 0, want: SegmentNew},
		{orders: 1, spent: 999, want: SegmentNew},
		{orders: 2, spent: 1500, want: SegmentReturning},
		{orders: 1, spent: 10000, want: SegmentHighValue},
		{orders: 5, spent: 49999.99, want: SegmentHighValue},
		{orders: 3, spent: 50000, want: SegmentVIP},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, SegmentFor(tc.orders, tc.spent),
			"orders=%d spent=%.2f", tc.orders, tc.spent)
	}
}

func TestIsElevated(t *testing.T) {
	assert.False(t, IsElevated(RoleUser))
	assert.True(t, IsElevated(RoleAdmin))
	assert.True(t, IsElevated(RoleSuperAdmin))
	assert.False(t, IsElevated(Role("guest")))
}
