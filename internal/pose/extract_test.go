package pose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorsOneByOne(t *testing.T) {
	cases := []struct {
		shape string
		body  string
	}{
		{"array", `[{"id":1}]`},
		{"items", `{"items":[{"id":1}]}`},
		{"data", `{"data":[{"id":1}]}`},
		{"poses", `{"poses":[{"id":1}]}`},
		{"yogaPoses", `{"yogaPoses":[{"id":1}]}`},
		{"results", `{"results":[{"id":1}]}`},
		{"first-array-field", `{"total":1,"list":[{"id":1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.shape, func(t *testing.T) {
			items, name, ok := ExtractList([]byte(tc.body))
			require.True(t, ok)
			assert.Equal(t, tc.shape, name)
			require.Len(t, items, 1)
			assert.Equal(t, float64(1), items[0]["id"])
		})
	}
}

func TestExtractListOrder(t *testing.T) {
	items, name, ok := ExtractList([]byte(`{"results":[{"id":3}],"items":[{"id":1}],"data":[{"id":2}]}`))
	require.True(t, ok)
	assert.Equal(t, "items", name)
	assert.Equal(t, float64(1), items[0]["id"])
}

func TestExtractListSkipsNonArrayKeyed(t *testing.T) {
	items, name, ok := ExtractList([]byte(`{"data":{"page":1},"poses":[{"id":5}]}`))
	require.True(t, ok)
	assert.Equal(t, "poses", name)
	assert.Len(t, items, 1)
}

func TestExtractListFirstArrayInDocumentOrder(t *testing.T) {
	items, _, ok := ExtractList([]byte(`{"zeta":[{"id":1}],"alpha":[{"id":2}]}`))
	require.True(t, ok)
	assert.Equal(t, float64(1), items[0]["id"])
}

func TestExtractListUnrecognised(t *testing.T) {
	for _, body := range []string{`{"total":0}`, `"text"`, `not json`, ``} {
		items, name, ok := ExtractList([]byte(body))
		assert.False(t, ok, body)
		assert.Empty(t, name)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestExtractListDropsNonObjects(t *testing.T) {
	items, _, ok := ExtractList([]byte(`[{"id":1}, 2, "x", null, {"id":3}]`))
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestExtractItem(t *testing.T) {
	cases := map[string]string{
		"direct": `{"id":4,"name":"貓牛式"}`,
		"data":   `{"data":{"id":4,"name":"貓牛式"}}`,
		"item":   `{"success":true,"item":{"id":4,"name":"貓牛式"}}`,
		"pose":   `{"pose":{"id":4,"name":"貓牛式"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			obj, ok := ExtractItem([]byte(body))
			require.True(t, ok)
			assert.Equal(t, 4, Normalize(obj).ID)
			assert.Equal(t, "貓牛式", Normalize(obj).Name)
		})
	}

	_, ok := ExtractItem([]byte(`[1,2]`))
	assert.False(t, ok)
}
