package tablesync

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"table-sync/feature/tablesync/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	src, dst := setupSourceDB(t), setupDestinationDB(t)
	seedSites(t, src)

	broken := userMeterJob()
	broken.Sources[0].Table = "missing_table"
	catalog := NewCatalog(
		Family{Name: FamilyCombine, Jobs: []Job{combineJob()}},
		Family{Name: FamilyTables, Jobs: []Job{broken}},
	)
	svc := NewService(newTestRunner(src, dst), catalog, models.Registry(), nil, dst, zap.NewNop(), time.Minute)

	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandler_Hello(t *testing.T) {
	status, body := get(t, setupTestApp(t), "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"Hello":"World"}`, body)
}

func TestHandler_LegacyTriggers(t *testing.T) {
	app := setupTestApp(t)

	status, body := get(t, app, "/combine-table-and-sync")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `"done"`, body)

	status, body = get(t, app, "/sync-tables")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `"not done"`, body)

	// The selective-column family is not configured in this catalog.
	_, body = get(t, app, "/selective-column-sync-tables")
	assert.Equal(t, `"not done"`, body)
}

func TestHandler_Sync(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Dry Run", func(t *testing.T) {
		status, body := get(t, app, "/sync/combine?dry_run=true")
		require.Equal(t, fiber.StatusOK, status, body)

		var report RunReport
		require.NoError(t, json.Unmarshal([]byte(body), &report))
		assert.True(t, report.DryRun)
		assert.True(t, report.OK)
		assert.Len(t, report.Jobs[0].Changes, 2)
	})

	t.Run("Failing Family", func(t *testing.T) {
		status, body := get(t, app, "/sync/tables")
		assert.Equal(t, fiber.StatusInternalServerError, status)

		var report RunReport
		require.NoError(t, json.Unmarshal([]byte(body), &report))
		assert.False(t, report.OK)
		assert.Len(t, report.Errors, 1)
	})

	t.Run("Unknown Family", func(t *testing.T) {
		status, _ := get(t, app, "/sync/nope")
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestHandler_FamiliesAndChecks(t *testing.T) {
	app := setupTestApp(t)

	status, body := get(t, app, "/families")
	require.Equal(t, fiber.StatusOK, status)
	var families []Family
	require.NoError(t, json.Unmarshal([]byte(body), &families))
	require.Len(t, families, 2)
	assert.Equal(t, FamilyCombine, families[0].Name)

	status, body = get(t, app, "/check/combine")
	require.Equal(t, fiber.StatusOK, status)
	var results []CheckResult
	require.NoError(t, json.Unmarshal([]byte(body), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
}

func TestHandler_ReportsDisabled(t *testing.T) {
	app := setupTestApp(t)

	status, _ := get(t, app, "/reports")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, _ = get(t, app, "/reports/runs/combine/2024-01-02/abc.json")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}
