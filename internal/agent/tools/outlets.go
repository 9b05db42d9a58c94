package tools

import (
	"context"
	"net/http"
	"strings"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	errx "github.com/kopichat-core-poc/server/internal/core/error"
)

// OutletSearcher resolves free-text outlet queries against the store
// directory. An empty result list is reported as an error by convention.
type OutletSearcher interface {
	Search(ctx context.Context, query string) ([]model.Outlet, error)
}

const (
	MsgEmptyOutletQuery = "Please specify an outlet or location. Example: 'SS 2'"
	MsgNoOutletsFound   = "No outlets found. Try a different name."
)

// OutletDirectory looks up outlets from an in-memory directory by matching
// the query against outlet names and addresses.
type OutletDirectory struct {
	outlets []model.Outlet
}

func NewOutletDirectory(outlets []model.Outlet) *OutletDirectory {
	return &OutletDirectory{outlets: outlets}
}

func (d *OutletDirectory) Search(ctx context.Context, query string) ([]model.Outlet, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errx.New(nil, http.StatusBadRequest, MsgEmptyOutletQuery)
	}

	var results []model.Outlet
	for _, o := range d.outlets {
		if matchOutlet(o, q) {
			results = append(results, o)
		}
	}
	if len(results) == 0 {
		return nil, errx.New(nil, http.StatusNotFound, MsgNoOutletsFound)
	}
	return results, nil
}

func matchOutlet(o model.Outlet, q string) bool {
	name := strings.ToLower(o.Name)
	if strings.Contains(q, name) || strings.Contains(name, q) {
		return true
	}
	address := strings.ToLower(o.Address)
	for _, tok := range strings.Fields(q) {
		tok = strings.Trim(tok, "?!.,'\"")
		if len(tok) < 3 || tok == "outlet" || tok == "store" {
			continue
		}
		if strings.Contains(address, tok) {
			return true
		}
	}
	return false
}

var _ OutletSearcher = (*OutletDirectory)(nil)
