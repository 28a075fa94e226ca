// internal/vendors/search.go
package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"upkept-workers/internal/models"
)

const (
	DefaultIndex      = "vendors"
	defaultSearchSize = 25
)

var (
	ErrSearchUnavailable = errors.New("vendor search unavailable")
	ErrSearchFailed      = errors.New("vendor search failed")
)

// Searcher runs generated vendor queries against an Elasticsearch index and
// resolves the hits back to catalog entries. Hits for vendors the catalog
// does not know are dropped.
type Searcher struct {
	client  *elasticsearch.Client
	index   string
	catalog *Catalog
	size    int
}

func NewSearcher(client *elasticsearch.Client, index string, catalog *Catalog) *Searcher {
	if index == "" {
		index = DefaultIndex
	}
	return &Searcher{
		client:  client,
		index:   index,
		catalog: catalog,
		size:    defaultSearchSize,
	}
}

type vendorDocument struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Specialty  []string `json:"specialty"`
	Categories []string `json:"categories"`
	Services   []string `json:"services"`
	Location   string   `json:"location"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildSearchBody turns the generated queries into a bool query: any query
// may match name, services or specialty, and the vendor must carry the
// category either as a typed tag or in its specialty text.
func BuildSearchBody(service models.ServiceProfile, queries []string, size int) map[string]interface{} {
	should := make([]interface{}, 0, len(queries))
	for _, q := range queries {
		should = append(should, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"name^2", "services^2", "specialty", "categories"},
			},
		})
	}

	category := string(service.Category)
	return map[string]interface{}{
		"size":    size,
		"_source": false,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
				"filter": []interface{}{
					map[string]interface{}{
						"bool": map[string]interface{}{
							"should": []interface{}{
								map[string]interface{}{"term": map[string]interface{}{"categories": category}},
								map[string]interface{}{"match": map[string]interface{}{"specialty": category}},
							},
							"minimum_should_match": 1,
						},
					},
				},
			},
		},
	}
}

// Search returns catalog vendors matching the queries, in relevance order.
func (s *Searcher) Search(ctx context.Context, service models.ServiceProfile, queries []string) ([]models.Vendor, error) {
	if s == nil || s.client == nil {
		return nil, ErrSearchUnavailable
	}
	if len(queries) == 0 {
		return []models.Vendor{}, nil
	}

	body, err := json.Marshal(BuildSearchBody(service, queries, s.size))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrSearchFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, res.Status(), strings.TrimSpace(string(msg)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	out := make([]models.Vendor, 0, len(parsed.Hits.Hits))
	seen := make(map[string]struct{}, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if _, dup := seen[hit.ID]; dup {
			continue
		}
		seen[hit.ID] = struct{}{}
		if v, ok := s.catalog.Get(hit.ID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// IndexVendors writes every catalog entry into the index, keyed by vendor id.
func (s *Searcher) IndexVendors(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrSearchUnavailable
	}

	vs := s.catalog.Vendors()
	for i, v := range vs {
		doc := vendorDocument{
			ID:        v.ID,
			Name:      v.Name,
			Specialty: v.Specialty,
			Services:  v.Services,
			Location:  v.Location,
		}
		for _, c := range v.Categories {
			doc.Categories = append(doc.Categories, string(c))
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode vendor %s: %w", v.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      s.index,
			DocumentID: v.ID,
			Body:       bytes.NewReader(body),
		}
		if i == len(vs)-1 {
			req.Refresh = "true"
		}

		res, err := req.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("index vendor %s: %w", v.ID, err)
		}
		failed := res.IsError()
		status := res.Status()
		res.Body.Close()
		if failed {
			return fmt.Errorf("index vendor %s: %s", v.ID, status)
		}
	}
	return nil
}
