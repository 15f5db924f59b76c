package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"id": 7546321788988,
		"variants": [{"id": 101, "price": 2000, "available": true}]
	}`), 0o644))

	product, err := fixtureSource{path: path}.Product(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, int64(7546321788988), product.ID)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, int64(2000), product.Variants[0].Price)
}

func TestFixtureSourceMissingFile(t *testing.T) {
	_, err := fixtureSource{path: "does-not-exist.json"}.Product(context.Background(), 0)
	assert.Error(t, err)
}
