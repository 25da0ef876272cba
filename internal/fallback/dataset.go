package fallback

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/five82/asana/internal/pose"
)

//go:embed poses.json
var bundled []byte

// ErrUnrecognizedDataset is returned when a dataset file holds no pose array.
var ErrUnrecognizedDataset = errors.New("unrecognized dataset shape")

// Dataset is the normalized bundled pose list. It is read-only after
// construction and safe for concurrent use.
type Dataset struct {
	records []pose.Record

	indexOnce sync.Once
	index     bleve.Index
	indexErr  error
}

// Bundled returns the dataset compiled into the binary.
func Bundled() (*Dataset, error) {
	ds, err := Parse(bundled)
	if err != nil {
		return nil, fmt.Errorf("parse bundled dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads a dataset from a JSON file in any list shape the API uses.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// Load returns the dataset at path, or the bundled one when path is empty.
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Bundled()
	}
	return LoadFile(path)
}

// Parse normalizes every pose object in data.
func Parse(data []byte) (*Dataset, error) {
	raws, _, ok := pose.ExtractList(data)
	if !ok {
		return nil, ErrUnrecognizedDataset
	}
	return New(pose.NormalizeAll(raws)), nil
}

// New builds a dataset from records, normalizing each again so hand-built
// records satisfy the same guarantees as parsed ones.
func New(records []pose.Record) *Dataset {
	out := make([]pose.Record, 0, len(records))
	for _, r := range records {
		out = append(out, pose.Normalize(r.Map()))
	}
	return &Dataset{records: out}
}

// Len reports the number of records. A nil dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the records in dataset order.
func (d *Dataset) Records() []pose.Record {
	if d == nil {
		return nil
	}
	out := make([]pose.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Find returns the record with id.
func (d *Dataset) Find(id int) (pose.Record, bool) {
	if d == nil {
		return pose.Record{}, false
	}
	return pose.FindByID(d.records, id)
}

// Close releases the search index if one was built.
func (d *Dataset) Close() error {
	if d == nil || d.index == nil {
		return nil
	}
	return d.index.Close()
}
