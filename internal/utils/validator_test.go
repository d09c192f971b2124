package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("user"))
	assert.True(t, IsValidRole("lessor"))
	assert.True(t, IsValidRole("admin"))
	assert.False(t, IsValidRole("superadmin"))
	assert.False(t, IsValidRole(""))
}

func TestIsValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, IsValidRating(rating))
	}
	assert.False(t, IsValidRating(0))
	assert.False(t, IsValidRating(6))
	assert.False(t, IsValidRating(-1))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "studio-apartment", Slugify("Studio Apartment"))
	assert.Equal(t, "pet-friendly", Slugify("  Pet-Friendly!  "))
	assert.Equal(t, "cau-giay-2", Slugify("Cau Giay 2"))
	assert.Equal(t, "", Slugify("***"))
}
