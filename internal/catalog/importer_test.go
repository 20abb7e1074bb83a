package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

func TestParseCSV(t *testing.T) {
	input := "Label, Color ,TextColor,Icon,Description,Category\n" +
		"Free Helmet,#000,#fff,gift,A helmet,grand\n" +
		",#111,#fff,gift,no label,GRAND\n" +
		"Bonus Droplets,#009845,#fff,droplet,\"Collect, then redeem\",Droplets\n" +
		"Nothing,#666,#fff,frown,,\n"

	prizes, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, prizes, 3, "rows without a label are dropped")

	assert.Equal(t, "Free Helmet", prizes[0].Label)
	assert.Equal(t, domain.CategoryGrand, prizes[0].Category)
	assert.Equal(t, "#000", prizes[0].Color)
	assert.Equal(t, "#fff", prizes[0].TextColor)
	assert.NotEmpty(t, prizes[0].ID)

	assert.Equal(t, domain.CategoryDroplets, prizes[1].Category)
	assert.Equal(t, "Collect, then redeem", prizes[1].Description)

	assert.Equal(t, domain.CategoryTryAgain, prizes[2].Category)
}

func TestParseCSV_ShortRowsAndMissingColumns(t *testing.T) {
	prizes, err := ParseCSV(strings.NewReader("label\nOnly Label\n"))
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	assert.Equal(t, domain.CategoryTryAgain, prizes[0].Category)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("color,icon\n#fff,gift\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	prizes, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, prizes)
}

func TestParseCategory(t *testing.T) {
	tests := map[string]domain.Category{
		"GRAND":     domain.CategoryGrand,
		"grand":     domain.CategoryGrand,
		"Try Again": domain.CategoryTryAgain,
		"try-again": domain.CategoryTryAgain,
		"tryagain":  domain.CategoryTryAgain,
		"droplet":   domain.CategoryDroplets,
		"":          domain.CategoryTryAgain,
		"jackpot":   domain.CategoryTryAgain,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCategory(in), in)
	}
}
