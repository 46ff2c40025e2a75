// ABOUTME: OpenSearch engine adapter built on the opensearch-go SDK
// ABOUTME: Implements both the query contract and the index administration contract

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
	"github.com/opensearch-project/opensearch-go/v4/opensearchutil"

	"catalog-suggest/core/domain"
	coreerrors "catalog-suggest/core/errors"
	"catalog-suggest/core/interfaces"
)

const apiName = "opensearch"

// maxErrorBody caps how much of an error response is kept in error messages
const maxErrorBody = 512

// Client is an OpenSearch (or Elasticsearch) client.
type Client struct {
	api    *opensearchapi.Client
	logger interfaces.Logger
}

// NewClient creates a client for the engine at baseURL, e.g. http://localhost:9200.
// Requests go through transport; retries are left to it, so the SDK's own are off.
func NewClient(baseURL string, transport http.RoundTripper, logger interfaces.Logger) (*Client, error) {
	api, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses:    []string{strings.TrimRight(baseURL, "/")},
			Transport:    transport,
			DisableRetry: true,
		},
	})
	if err != nil {
		return nil, coreerrors.WrapError(err, "create opensearch client")
	}
	return &Client{api: api, logger: logger}, nil
}

// Search runs a disjunctive multi_match query and returns hits in engine order.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	body, err := json.Marshal(encodeSearch(req))
	if err != nil {
		return nil, coreerrors.WrapError(err, "encode search request")
	}

	resp, err := c.api.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{req.Index},
		Body:    bytes.NewReader(body),
	})
	if err != nil {
		var raw *opensearch.Response
		if resp != nil {
			raw = resp.Inspect().Response
		}
		return nil, classify("search request", req.Index, raw, err)
	}

	out := &domain.SearchResponse{
		Hits:  make([]domain.SearchHit, 0, len(resp.Hits.Hits)),
		Total: resp.Hits.Total.Value,
	}
	for _, h := range resp.Hits.Hits {
		var src sourceRecord
		if len(h.Source) > 0 {
			if err := json.Unmarshal(h.Source, &src); err != nil {
				return nil, coreerrors.WrapError(err, "decode search hit")
			}
		}
		out.Hits = append(out.Hits, domain.SearchHit{Score: float64(h.Score), Record: src.toDomain()})
	}
	return out, nil
}

// Ping checks that the engine answers on its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.api.Ping(ctx, &opensearchapi.PingReq{})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		if resp == nil {
			return err
		}
		return &coreerrors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode, Message: "engine not ready"}
	}
	return nil
}

// CreateIndex creates index with the autocomplete mapping. An index that
// already exists is not an error.
func (c *Client) CreateIndex(ctx context.Context, index string) error {
	resp, err := c.api.Indices.Create(ctx, opensearchapi.IndicesCreateReq{
		Index: index,
		Body:  strings.NewReader(IndexMapping()),
	})
	if err != nil {
		if strings.Contains(err.Error(), "resource_already_exists_exception") {
			c.logInfo("Index already exists", map[string]interface{}{"index": index})
			return nil
		}
		var raw *opensearch.Response
		if resp != nil {
			raw = resp.Inspect().Response
		}
		return classify("create index", index, raw, err)
	}

	c.logInfo("Index created", map[string]interface{}{"index": index})
	return nil
}

// BulkIndex sends records through a bulk indexer and returns how many were
// accepted. Documents the engine rejects are counted and logged; only a
// failed bulk request is an error.
func (c *Client) BulkIndex(ctx context.Context, index string, records []domain.CatalogRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var (
		mu          sync.Mutex
		indexed     int
		rejected    int
		firstReason string
		requestErr  error
	)

	bi, err := opensearchutil.NewBulkIndexer(opensearchutil.BulkIndexerConfig{
		Client:     c.api,
		NumWorkers: 1,
		OnError: func(_ context.Context, err error) {
			mu.Lock()
			defer mu.Unlock()
			if requestErr == nil {
				requestErr = err
			}
		},
	})
	if err != nil {
		return 0, coreerrors.WrapError(err, "create bulk indexer")
	}

	for _, r := range records {
		doc, err := json.Marshal(r)
		if err != nil {
			bi.Close(ctx)
			return indexed, coreerrors.WrapError(err, "encode record")
		}

		err = bi.Add(ctx, opensearchutil.BulkIndexerItem{
			Index:  index,
			Action: "index",
			Body:   bytes.NewReader(doc),
			OnSuccess: func(context.Context, opensearchutil.BulkIndexerItem, opensearchapi.BulkRespItem) {
				mu.Lock()
				indexed++
				mu.Unlock()
			},
			OnFailure: func(_ context.Context, _ opensearchutil.BulkIndexerItem, res opensearchapi.BulkRespItem, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					// the whole request failed; OnError records it
					return
				}
				rejected++
				if firstReason == "" && res.Error != nil {
					firstReason = res.Error.Type + ": " + res.Error.Reason
				}
			},
		})
		if err != nil {
			bi.Close(ctx)
			return indexed, coreerrors.WrapError(err, "queue record")
		}
	}

	if err := bi.Close(ctx); err != nil {
		return indexed, coreerrors.WrapError(err, "flush bulk indexer")
	}

	mu.Lock()
	defer mu.Unlock()

	if requestErr != nil {
		return indexed, &coreerrors.ExternalAPIError{API: apiName, StatusCode: statusFromError(requestErr), Message: truncate(requestErr.Error())}
	}
	if rejected > 0 {
		c.logWarn("Documents rejected", map[string]interface{}{
			"index":    index,
			"rejected": rejected,
			"total":    len(records),
			"reason":   firstReason,
		})
	}
	return indexed, nil
}

// Refresh makes recently indexed documents visible to search.
func (c *Client) Refresh(ctx context.Context, index string) error {
	resp, err := c.api.Indices.Refresh(ctx, &opensearchapi.IndicesRefreshReq{Indices: []string{index}})
	if err != nil {
		var raw *opensearch.Response
		if resp != nil {
			raw = resp.Inspect().Response
		}
		return classify("refresh index", index, raw, err)
	}
	return nil
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

// classify converts SDK errors into typed errors. Without a response the
// request never reached the engine. Every call here addresses one index, so
// a 404 means that index is missing.
func classify(op, index string, resp *opensearch.Response, err error) error {
	if resp == nil || resp.StatusCode == 0 {
		return coreerrors.WrapError(err, op)
	}
	if resp.StatusCode == http.StatusNotFound {
		return &coreerrors.NotFoundError{Resource: "index", ID: index}
	}
	return &coreerrors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode, Message: truncate(err.Error())}
}

// statusFromError recovers the status the SDK reports in its error text,
// e.g. "status: 503, ...". Zero means none was reported.
func statusFromError(err error) int {
	var status int
	msg := err.Error()
	if i := strings.Index(msg, "status: "); i >= 0 {
		fmt.Sscanf(msg[i+len("status: "):], "%d", &status)
	}
	return status
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
