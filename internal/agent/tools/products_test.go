package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/kopichat-core-poc/server/internal/core/error"
)

func TestCatalogSearchFindsTumblers(t *testing.T) {
	search := NewCatalogSearch(DefaultCatalog)

	answer, err := search.Search(context.Background(), "What tumblers do you offer?")
	require.NoError(t, err)
	require.NotEmpty(t, answer.Sources)

	assert.Contains(t, answer.Answer, "OG Cup")
	for _, src := range answer.Sources {
		assert.NotEmpty(t, src.Title)
		assert.NotEmpty(t, src.Price)
	}
}

func TestCatalogSearchRanksTitleHitsFirst(t *testing.T) {
	search := NewCatalogSearch(DefaultCatalog)

	answer, err := search.Search(context.Background(), "ceramic mug")
	require.NoError(t, err)
	require.NotEmpty(t, answer.Sources)
	assert.Equal(t, "ZUS Ceramic Mug 350ml", answer.Sources[0].Title)
}

func TestCatalogSearchCapsResults(t *testing.T) {
	search := NewCatalogSearch(DefaultCatalog)

	// "zus" appears in every title
	answer, err := search.Search(context.Background(), "zus drinkware")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(answer.Sources), maxProductResults)
}

func TestCatalogSearchEmptyQuery(t *testing.T) {
	search := NewCatalogSearch(DefaultCatalog)

	_, err := search.Search(context.Background(), "   ")
	require.Error(t, err)

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, MsgEmptyProductQuery, appErr.Message)
}

func TestCatalogSearchNoMatch(t *testing.T) {
	search := NewCatalogSearch(DefaultCatalog)

	_, err := search.Search(context.Background(), "quantum flux capacitor")
	require.Error(t, err)

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, MsgNoProductsMatched, appErr.Message)
}
