package audit_test

import (
	"net/http"
	"testing"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationsAreAudited(t *testing.T) {
	app := testutil.NewApp(t)
	italian := app.LoginItalian(t)
	sushi := app.LoginSushi(t)

	status, _ := app.Do(t, http.MethodPut, "/api/tables/table3/status", italian, map[string]string{"status": "available"})
	require.Equal(t, http.StatusOK, status)
	status, _ = app.Do(t, http.MethodPost, "/api/orders/order4/advance", sushi, nil)
	require.Equal(t, http.StatusOK, status)

	status, raw := app.Do(t, http.MethodGet, "/api/audit-logs", italian, nil)
	require.Equal(t, http.StatusOK, status)

	var logs []audit.AuditLogResponse
	testutil.Decode(t, raw, &logs)
	require.Len(t, logs, 1, "only this restaurant's entries")
	entry := logs[0]
	assert.Equal(t, audit.EntityTable, entry.EntityType)
	assert.Equal(t, "table3", entry.EntityID)
	assert.Equal(t, models.AuditActionStatus, entry.Action)
	assert.Equal(t, "user1", entry.UserID)
	assert.Contains(t, entry.BeforeData, "Smith Family")
	assert.NotContains(t, entry.AfterData, "Smith Family")

	status, raw = app.Do(t, http.MethodGet, "/api/audit-logs?entity_type=order", sushi, nil)
	require.Equal(t, http.StatusOK, status)
	logs = nil
	testutil.Decode(t, raw, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "order4", logs[0].EntityID)

	status, _ = app.Do(t, http.MethodGet, "/api/audit-logs?limit=0", sushi, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListNewestFirst(t *testing.T) {
	app := testutil.NewApp(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, app.Audit.WriteLog(audit.LogOptions{
			RestaurantID: "rest1",
			EntityType:   audit.EntityMenuItem,
			EntityID:     id,
			Action:       models.AuditActionCreate,
			After:        map[string]string{"id": id},
		}))
	}

	logs, err := app.Audit.List("rest1", audit.Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "c", logs[0].EntityID)
	assert.Equal(t, "b", logs[1].EntityID)
	assert.Equal(t, "null", logs[0].BeforeData)

	logs, err = app.Audit.List("rest2", audit.Filter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
