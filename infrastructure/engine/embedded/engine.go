// ABOUTME: Embedded search engine backed by bleve for offline evaluation and tests
// ABOUTME: Serves the same query and administration contracts as the REST adapter

package embedded

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"

	"catalog-suggest/core/domain"
	coreerrors "catalog-suggest/core/errors"
	"catalog-suggest/core/interfaces"
)

// Engine holds named bleve indexes. With an empty directory indexes live in
// memory only.
type Engine struct {
	dir     string
	logger  interfaces.Logger
	mu      sync.RWMutex
	indexes map[string]bleve.Index
}

// NewEngine creates an engine storing indexes under dir.
func NewEngine(dir string, logger interfaces.Logger) *Engine {
	return &Engine{
		dir:     dir,
		logger:  logger,
		indexes: make(map[string]bleve.Index),
	}
}

// Ping always succeeds for an in-process engine.
func (e *Engine) Ping(ctx context.Context) error {
	return ctx.Err()
}

// CreateIndex creates the named index, or opens it if it already exists on disk.
func (e *Engine) CreateIndex(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.indexes[name]; ok {
		return nil
	}

	if e.dir != "" {
		if idx, err := bleve.Open(e.path(name)); err == nil {
			e.indexes[name] = idx
			e.logInfo("Index already exists", map[string]interface{}{"index": name})
			return nil
		}
	}

	im, err := newIndexMapping()
	if err != nil {
		return coreerrors.WrapError(err, "build index mapping")
	}

	var idx bleve.Index
	if e.dir == "" {
		idx, err = bleve.NewMemOnly(im)
	} else {
		if err = os.MkdirAll(e.dir, 0o755); err != nil {
			return coreerrors.WrapError(err, "create index directory")
		}
		idx, err = bleve.New(e.path(name), im)
	}
	if err != nil {
		return coreerrors.WrapError(err, "create index")
	}

	e.indexes[name] = idx
	e.logInfo("Index created", map[string]interface{}{"index": name, "dir": e.dir})
	return nil
}

// BulkIndex adds records in a single batch.
func (e *Engine) BulkIndex(ctx context.Context, name string, records []domain.CatalogRecord) (int, error) {
	idx, err := e.index(name)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	batch := idx.NewBatch()
	for _, r := range records {
		if err := batch.Index(uuid.NewString(), document(r)); err != nil {
			return 0, coreerrors.WrapError(err, "add document to batch")
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := idx.Batch(batch); err != nil {
		return 0, coreerrors.WrapError(err, "index batch")
	}
	return len(records), nil
}

// Refresh is a no-op; batches are searchable once applied.
func (e *Engine) Refresh(ctx context.Context, name string) error {
	_, err := e.index(name)
	return err
}

// Search runs each should clause as a disjunction of per-field match queries
// and combines the clauses disjunctively.
func (e *Engine) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	idx, err := e.index(req.Index)
	if err != nil {
		return nil, err
	}

	sr := bleve.NewSearchRequestOptions(buildQuery(req.Should), req.Size, 0, false)
	sr.Fields = req.Source

	res, err := idx.SearchInContext(ctx, sr)
	if err != nil {
		return nil, coreerrors.WrapError(err, "search")
	}

	hits := make([]domain.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, domain.SearchHit{Score: h.Score, Record: record(h.Fields)})
	}
	return &domain.SearchResponse{Hits: hits, Total: int(res.Total)}, nil
}

// Close releases every open index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for name, idx := range e.indexes {
		if err := idx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.indexes, name)
	}
	return firstErr
}

func (e *Engine) index(name string) (bleve.Index, error) {
	e.mu.RLock()
	idx, ok := e.indexes[name]
	e.mu.RUnlock()
	if ok {
		return idx, nil
	}

	if e.dir != "" {
		e.mu.Lock()
		defer e.mu.Unlock()
		if idx, ok := e.indexes[name]; ok {
			return idx, nil
		}
		if idx, err := bleve.Open(e.path(name)); err == nil {
			e.indexes[name] = idx
			return idx, nil
		}
	}
	return nil, &coreerrors.NotFoundError{Resource: "index", ID: name}
}

func (e *Engine) path(name string) string {
	return filepath.Join(e.dir, name+".bleve")
}

func (e *Engine) logInfo(msg string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Info(msg, fields)
	}
}

func buildQuery(clauses []domain.MultiMatch) query.Query {
	should := make([]query.Query, 0, len(clauses))
	for _, clause := range clauses {
		perField := make([]query.Query, 0, len(clause.Fields))
		for _, field := range clause.Fields {
			mq := bleve.NewMatchQuery(clause.Query)
			mq.SetField(fieldName(field))
			if fieldName(field) != field {
				mq.Analyzer = autocompleteSearch
			}
			if clause.Fuzziness == domain.FuzzinessAuto {
				mq.SetFuzziness(autoFuzziness(clause.Query))
				mq.SetPrefix(clause.PrefixLength)
			}
			perField = append(perField, mq)
		}
		should = append(should, bleve.NewDisjunctionQuery(perField...))
	}
	return bleve.NewDisjunctionQuery(should...)
}

// autoFuzziness mirrors AUTO edit distance: exact for up to two characters,
// one edit up to five, two beyond.
func autoFuzziness(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

func document(r domain.CatalogRecord) map[string]interface{} {
	return map[string]interface{}{
		"name":     r.Name,
		"brand":    r.Brand,
		"category": r.Category,
		"price":    r.Price,
		"url":      r.URL,
		"store":    r.Store,
	}
}

func record(fields map[string]interface{}) domain.CatalogRecord {
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}
	price, _ := fields["price"].(float64)
	return domain.CatalogRecord{
		Name:     str("name"),
		Brand:    str("brand"),
		Category: str("category"),
		Price:    price,
		URL:      str("url"),
		Store:    str("store"),
	}
}
