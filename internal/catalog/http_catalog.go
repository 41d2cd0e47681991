package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"resty.dev/v3"

	"github.com/mkazlow/envbuilder/internal/cerr"
)

// HTTPCatalog fetches asset JSON from a remote asset service at
// GET <baseURL>/assets/{family}/{name}.
type HTTPCatalog struct {
	client  *resty.Client
	baseURL string
}

// NewHTTPCatalog builds an HTTPCatalog backed by a resty client targeting
// baseURL.
func NewHTTPCatalog(baseURL string) *HTTPCatalog {
	return &HTTPCatalog{
		client:  resty.New(),
		baseURL: baseURL,
	}
}

// Close releases the underlying resty client's idle connections.
func (hc *HTTPCatalog) Close() error {
	return hc.client.Close()
}

func (hc *HTTPCatalog) GetAsset(ctx context.Context, typ TypeCode, name string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/assets/%s/%s", hc.baseURL, typ, name)

	resp, err := hc.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, cerr.CatalogFetch(name, err)
	}
	if resp.IsError() {
		return nil, cerr.CatalogFetch(name, fmt.Errorf("catalog service returned %s", resp.Status()))
	}

	return json.RawMessage(resp.Bytes()), nil
}
