package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testcases := []struct {
		name     string
		raw      string
		wantErr  bool
		wantType Type
		check    func(t *testing.T, it Intent)
	}{
		{
			name: "full-product-search",
			raw: `{
				"intent_type": "product_search",
				"category": "Saree",
				"subcategory": "Ajrakh Saree",
				"attributes": {"color": "indigo", "fabric": "cotton", "technique": "ajrakh", "price_max": 3000},
				"search_query": "indigo ajrakh cotton saree",
				"confidence": 0.92,
				"needs_clarification": false
			}`,
			wantType: TypeProductSearch,
			check: func(t *testing.T, it Intent) {
				assert.Equal(t, "Saree", it.Category)
				assert.Equal(t, "indigo", it.Attributes.Color)
				require.NotNil(t, it.Attributes.PriceMax)
				assert.Equal(t, 3000.0, *it.Attributes.PriceMax)
				assert.Nil(t, it.Attributes.PriceMin)
			},
		},
		{
			name:     "price-as-numeric-string",
			raw:      `{"intent_type": "product_search", "attributes": {"price_max": "2500"}, "search_query": "q", "confidence": 0.8}`,
			wantType: TypeProductSearch,
			check: func(t *testing.T, it Intent) {
				require.NotNil(t, it.Attributes.PriceMax)
				assert.Equal(t, 2500.0, *it.Attributes.PriceMax)
			},
		},
		{
			name:     "price-as-free-text-is-dropped",
			raw:      `{"intent_type": "product_search", "attributes": {"price_max": "under three thousand"}, "search_query": "q", "confidence": 0.8}`,
			wantType: TypeProductSearch,
			check: func(t *testing.T, it Intent) {
				assert.Nil(t, it.Attributes.PriceMax)
			},
		},
		{
			name:     "legacy-price-range-object",
			raw:      `{"intent_type": "product_search", "attributes": {"price_range": {"min": 3000, "max": "4000"}}, "search_query": "q", "confidence": 0.8}`,
			wantType: TypeProductSearch,
			check: func(t *testing.T, it Intent) {
				require.NotNil(t, it.Attributes.PriceMin)
				require.NotNil(t, it.Attributes.PriceMax)
				assert.Equal(t, 3000.0, *it.Attributes.PriceMin)
				assert.Equal(t, 4000.0, *it.Attributes.PriceMax)
			},
		},
		{
			name:     "confidence-clamped-high",
			raw:      `{"intent_type": "greeting", "search_query": "hello", "confidence": 3.2}`,
			wantType: TypeGreeting,
			check: func(t *testing.T, it Intent) {
				assert.Equal(t, 1.0, it.Confidence)
			},
		},
		{
			name:     "confidence-clamped-low",
			raw:      `{"intent_type": "greeting", "search_query": "hello", "confidence": -0.4}`,
			wantType: TypeGreeting,
			check: func(t *testing.T, it Intent) {
				assert.Equal(t, 0.0, it.Confidence)
			},
		},
		{
			name:    "unknown-intent-type",
			raw:     `{"intent_type": "buy_now", "search_query": "q", "confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "malformed-json",
			raw:     `{"intent_type": "greeting"`,
			wantErr: true,
		},
		{
			name:    "empty-string",
			raw:     ``,
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := Parse(tc.raw)

			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantType, it.IntentType)
			if tc.check != nil {
				tc.check(t, it)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	it := Default("show me sarees")

	assert.Equal(t, TypeGeneralQuestion, it.IntentType)
	assert.Equal(t, "show me sarees", it.SearchQuery)
	assert.Equal(t, 0.5, it.Confidence)
	assert.False(t, it.NeedsClarification)
}
