package tools

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	errx "github.com/kopichat-core-poc/server/internal/core/error"
)

// ProductAnswer is the product-search success payload: an answer string plus
// the catalog entries it was built from.
type ProductAnswer struct {
	Answer  string                `json:"answer"`
	Sources []model.ProductSource `json:"sources"`
}

// ProductSearcher answers free-text drinkware questions.
type ProductSearcher interface {
	Search(ctx context.Context, query string) (*ProductAnswer, error)
}

const (
	MsgEmptyProductQuery = "Please ask about a product. Example: 'What tumblers do you offer?'"
	MsgNoProductsMatched = "I couldn't find a matching product. Try asking about tumblers, mugs, or bottles."

	maxProductResults = 3
)

// CatalogSearch ranks an in-memory drinkware catalog by keyword overlap
// between the query and each entry's title, category, and description.
type CatalogSearch struct {
	products []model.Product
}

func NewCatalogSearch(products []model.Product) *CatalogSearch {
	return &CatalogSearch{products: products}
}

func (s *CatalogSearch) Search(ctx context.Context, query string) (*ProductAnswer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errx.New(nil, http.StatusBadRequest, MsgEmptyProductQuery)
	}

	type scored struct {
		product model.Product
		score   int
	}
	var matches []scored
	for _, p := range s.products {
		if sc := scoreProduct(p, query); sc > 0 {
			matches = append(matches, scored{product: p, score: sc})
		}
	}
	if len(matches) == 0 {
		return nil, errx.New(nil, http.StatusNotFound, MsgNoProductsMatched)
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > maxProductResults {
		matches = matches[:maxProductResults]
	}

	answer := &ProductAnswer{}
	var b strings.Builder
	b.WriteString("Here's what I found:")
	for _, m := range matches {
		fmt.Fprintf(&b, "\n- %s (%s): %s", m.product.Title, m.product.Price, m.product.Description)
		answer.Sources = append(answer.Sources, model.ProductSource{
			Title: m.product.Title,
			Price: m.product.Price,
		})
	}
	answer.Answer = b.String()
	return answer, nil
}

// scoreProduct counts query tokens appearing in the entry's searchable text.
// Title hits weigh double so exact product mentions outrank generic matches.
func scoreProduct(p model.Product, query string) int {
	title := strings.ToLower(p.Title)
	rest := strings.ToLower(p.Category + " " + p.Description)

	score := 0
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, "?!.,'\"")
		if len(tok) < 3 {
			continue
		}
		// naive plural folding so "tumblers" still hits "tumbler"
		singular := strings.TrimSuffix(tok, "s")
		switch {
		case strings.Contains(title, tok), len(singular) >= 3 && strings.Contains(title, singular):
			score += 2
		case strings.Contains(rest, tok), len(singular) >= 3 && strings.Contains(rest, singular):
			score++
		}
	}
	return score
}

var _ ProductSearcher = (*CatalogSearch)(nil)
