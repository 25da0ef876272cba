package fallback

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/five82/asana/internal/pose"
)

// searchFields are the indexed text fields. Chinese fields use bigram
// analysis, English fields use stemming.
var searchFields = []struct {
	name     string
	analyzer string
	boost    float64
}{
	{"name", cjk.AnalyzerName, 3},
	{"name_en", en.AnalyzerName, 3},
	{"effect", cjk.AnalyzerName, 1},
	{"effect_en", en.AnalyzerName, 1},
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	for _, f := range searchFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = f.analyzer
		fm.Store = false
		docMapping.AddFieldMappingsAt(f.name, fm)
	}
	indexMapping.AddDocumentMapping("_default", docMapping)
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// buildIndex indexes every record under its dataset position.
func (d *Dataset) buildIndex() (bleve.Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	batch := index.NewBatch()
	for i, r := range d.records {
		doc := map[string]any{
			"name":      r.Name,
			"name_en":   r.NameEN,
			"effect":    r.Effect,
			"effect_en": r.EffectEN,
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("index pose %d: %w", r.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("commit search index: %w", err)
	}
	return index, nil
}

// Search returns the records matching text in dataset order. Every term of
// text must appear in one field. Blank text matches everything.
func (d *Dataset) Search(ctx context.Context, text string) ([]pose.Record, error) {
	text = strings.TrimSpace(text)
	if d.Len() == 0 {
		return nil, nil
	}
	if text == "" {
		return d.Records(), nil
	}

	d.indexOnce.Do(func() {
		d.index, d.indexErr = d.buildIndex()
	})
	if d.indexErr != nil {
		return nil, d.indexErr
	}

	var fieldQueries []query.Query
	for _, f := range searchFields {
		mq := bleve.NewMatchQuery(text)
		mq.SetField(f.name)
		mq.SetBoost(f.boost)
		mq.SetOperator(query.MatchQueryOperatorAnd)
		fieldQueries = append(fieldQueries, mq)
	}
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(fieldQueries...), len(d.records), 0, false)
	res, err := d.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search dataset: %w", err)
	}

	positions := make([]int, 0, len(res.Hits))
	for _, hit := range res.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil || pos < 0 || pos >= len(d.records) {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	out := make([]pose.Record, 0, len(positions))
	for _, pos := range positions {
		out = append(out, d.records[pos])
	}
	return out, nil
}
