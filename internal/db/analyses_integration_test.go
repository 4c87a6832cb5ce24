//go:build integration

package db

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestIntegration_Analyses(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	var ids []uuid.UUID
	defer func() {
		for _, id := range ids {
			_, _ = db.pool.Exec(ctx, "DELETE FROM analyses WHERE id = $1", id)
		}
	}()

	t.Run("save and get", func(t *testing.T) {
		id, err := db.SaveAnalysis(ctx, KindMatch, "resume\x00job", map[string]int{"overall_score": 42})
		require.NoError(t, err)
		ids = append(ids, id)

		got, err := db.GetAnalysis(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, KindMatch, got.Kind)
		assert.Equal(t, HashInput("resume\x00job"), got.InputHash)

		var result map[string]int
		require.NoError(t, json.Unmarshal(got.Result, &result))
		assert.Equal(t, 42, result["overall_score"])
	})

	t.Run("missing returns nil", func(t *testing.T) {
		got, err := db.GetAnalysis(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list filters by kind", func(t *testing.T) {
		id, err := db.SaveAnalysis(ctx, KindParse, "resume", map[string]string{"summary": "x"})
		require.NoError(t, err)
		ids = append(ids, id)

		parses, err := db.ListAnalyses(ctx, KindParse, 200)
		require.NoError(t, err)
		for _, a := range parses {
			assert.Equal(t, KindParse, a.Kind)
		}

		all, err := db.ListAnalyses(ctx, "", 200)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 2)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := db.SaveAnalysis(ctx, Kind("rank"), "x", nil)
		assert.Error(t, err)
	})
}
