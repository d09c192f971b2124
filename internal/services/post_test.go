package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFilterValidateAndNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		filter := PostFilter{}
		assert.NoError(t, filter.ValidateAndNormalize())
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, DefaultPageSize, filter.Limit)
	})

	t.Run("clamps oversized page size", func(t *testing.T) {
		filter := PostFilter{Limit: 5000}
		assert.NoError(t, filter.ValidateAndNormalize())
		assert.Equal(t, MaxPageSize, filter.Limit)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		filter := PostFilter{MinPrice: -1}
		assert.ErrorIs(t, filter.ValidateAndNormalize(), ErrInvalidFilter)
	})

	t.Run("rejects inverted price range", func(t *testing.T) {
		filter := PostFilter{MinPrice: 500, MaxPrice: 100}
		assert.ErrorIs(t, filter.ValidateAndNormalize(), ErrInvalidFilter)
	})

	t.Run("trims search and city", func(t *testing.T) {
		filter := PostFilter{Search: "  studio  ", City: " Hanoi "}
		assert.NoError(t, filter.ValidateAndNormalize())
		assert.Equal(t, "studio", filter.Search)
		assert.Equal(t, "Hanoi", filter.City)
	})
}
