package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name      string
		wantCat   Category
		wantEmoji string
	}{
		{"Tomatoes", CategoryProduce, "🥬"},
		{"Chicken breast", CategoryProtein, "🥩"},
		{"Xyzzy", CategoryOther, "📦"},
		{"Eggs", CategoryProtein, "🥩"},
		{"Whole milk", CategoryDairy, "🥛"},
		{"Flour", CategoryGrains, "🌾"},
		{"Black pepper", CategorySpices, "🧂"},
		{"Red bell pepper", CategoryProduce, "🥬"},
		{"Eggplant", CategoryProduce, "🥬"},
		{"PARMESAN", CategoryDairy, "🥛"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, emoji := Categorize(tt.name)
			assert.Equal(t, tt.wantCat, cat)
			assert.Equal(t, tt.wantEmoji, emoji)
		})
	}
}

func TestCategoryEmoji(t *testing.T) {
	for _, c := range CategoryOrder {
		assert.NotEmpty(t, c.Emoji())
	}
	assert.Equal(t, "📦", Category("frozen").Emoji())
}
