// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

func TestCatalogUpsert(t *testing.T) {
	catalog, err := OpenCatalog(t.TempDir())
	require.NoError(t, err)
	defer catalog.Close()

	rec := sampleRecord()
	rec.DownloadTimestamp = time.Now()
	require.NoError(t, catalog.Upsert(rec))

	// Rerunning the same patent replaces the row instead of appending.
	rec.Title = "Cannabis extract formulation (amended)"
	require.NoError(t, catalog.Upsert(rec))

	n, err := catalog.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCatalogDistinctNumbers(t *testing.T) {
	catalog, err := OpenCatalog(t.TempDir())
	require.NoError(t, err)
	defer catalog.Close()

	first := sampleRecord()
	second := sampleRecord()
	second.Number = "US7654321B2"

	require.NoError(t, catalog.Upsert(first))
	require.NoError(t, catalog.Upsert(second))

	n, err := catalog.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestSinkWithCatalogEnabled(t *testing.T) {
	cfg := types.SinkConfig{
		OutputDir:  t.TempDir(),
		FilePrefix: "cannabis_patent",
		Catalog:    true,
	}
	sink, err := NewSink(cfg, nil)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Persist(sampleRecord()))

	require.NotNil(t, sink.catalog)
	n, err := sink.catalog.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
