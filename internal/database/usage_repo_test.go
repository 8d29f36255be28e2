package database

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/ocr-gateway/internal/models"
)

func TestMigrationVersionsAscending(t *testing.T) {
	versions := migrationVersions()

	require.Len(t, versions, len(migrations))
	for i := 1; i < len(versions); i++ {
		assert.Less(t, versions[i-1], versions[i])
	}
}

// openTestDB connects to TEST_DATABASE_URL or skips the test
func openTestDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Connect(url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, RunMigrations(db))
	return db
}

func TestUsageLedgerRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	since := time.Now().Add(-time.Minute)

	_, err := db.Pool.Exec(ctx, `DELETE FROM ocr_calls`)
	require.NoError(t, err)

	failure := "Vision API error: Bad image data."
	calls := []*models.OCRCall{
		{RequestID: "req-1", Filename: "a.jpg", SizeBytes: 100, ContentDigest: strings.Repeat("a", 64), Provider: "vision", Success: true, ProcessingTimeMS: 40},
		{RequestID: "req-1", Filename: "b.jpg", SizeBytes: 300, ContentDigest: strings.Repeat("b", 64), Provider: "vision", ErrorMessage: &failure, ProcessingTimeMS: 20},
	}
	for _, call := range calls {
		require.NoError(t, db.RecordOCRCall(ctx, call))
		assert.NotZero(t, call.ID)
		assert.False(t, call.CreatedAt.IsZero())
	}

	summary, err := db.GetUsageSummary(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, &models.UsageSummary{Calls: 2, Failures: 1, Bytes: 400, AvgTimeMS: 30}, summary)

	recent, err := db.ListRecentCalls(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b.jpg", recent[0].Filename)
	require.NotNil(t, recent[0].ErrorMessage)
	assert.Equal(t, failure, *recent[0].ErrorMessage)

	removed, err := db.CleanupOldCalls(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRecordOCRCallLongNames(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	call := &models.OCRCall{
		RequestID:     strings.Repeat("r", 200),
		Filename:      strings.Repeat("n", 300) + ".jpg",
		SizeBytes:     1,
		ContentDigest: strings.Repeat("c", 64),
		Provider:      "vision",
		Success:       true,
	}
	require.NoError(t, db.RecordOCRCall(ctx, call))

	var stored string
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT filename FROM ocr_calls WHERE id = $1`, call.ID).Scan(&stored))
	assert.Equal(t, call.Filename, stored)
}
