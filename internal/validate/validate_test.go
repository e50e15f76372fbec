package validate

import (
	"strings"
	"testing"

	"wardrobe/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	for _, ok := range []string{"tee-001", "cat_tops", "0b8f5d7e-6a1c-4d8e-9f3a-2b1c0d9e8f7a"} {
		_, valid := ID(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "   ", "a b", "x;DROP", strings.Repeat("a", 65)} {
		_, valid := ID(bad)
		assert.False(t, valid, bad)
	}
}

func TestSizeAndCategoryType(t *testing.T) {
	sz, ok := Size(" xl ")
	assert.True(t, ok)
	assert.Equal(t, domain.SizeXL, sz)

	_, ok = Size("XXXXL")
	assert.False(t, ok)

	ct, ok := CategoryType("footwear")
	assert.True(t, ok)
	assert.Equal(t, domain.Footwear, ct)

	_, ok = CategoryType("HATS")
	assert.False(t, ok)
}

func TestName(t *testing.T) {
	n, ok := Name("  Classic Crew Tee ")
	assert.True(t, ok)
	assert.Equal(t, "Classic Crew Tee", n)

	_, ok = Name(strings.Repeat("x", MaxName+1))
	assert.False(t, ok)
	_, ok = Name("")
	assert.False(t, ok)
}

func TestQ(t *testing.T) {
	q, ok := Q("  denim ")
	assert.True(t, ok)
	assert.Equal(t, "denim", q)

	_, ok = Q("<script>")
	assert.False(t, ok)
}

func TestImage(t *testing.T) {
	_, ok := Image("product_img/tee-001-front.jpg")
	assert.True(t, ok)
	_, ok = Image("has space.jpg")
	assert.False(t, ok)
}

func TestEmailAndPassword(t *testing.T) {
	_, ok := Email("alice@wardrobe.test")
	assert.True(t, ok)
	_, ok = Email("alice@")
	assert.False(t, ok)

	assert.True(t, Password("Passw0rd!"))
	assert.False(t, Password("password"))
	assert.False(t, Password("Sh0rt!"))
}
