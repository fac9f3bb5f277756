package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillbridge/config"
	"skillbridge/internal/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturedRequest struct {
	method string
	path   string
	query  string
	prefer string
	apikey string
}

func newTestClient(t *testing.T, status int, responseBody string, captured *capturedRequest) *remote.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.prefer = r.Header.Get("Prefer")
		captured.apikey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	return remote.NewClient(config.RemoteConfig{
		BaseURL: server.URL,
		Key:     "service-key",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

type testRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestTableQuery_GetEncodesFilters(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[{"id":1,"name":"a"}]`, &captured)

	var rows []testRow
	err := client.Table("widgets").
		Select("id,name").
		Eq("name", "a").
		Order("id", true).
		Limit(10).
		Get(context.Background(), &rows)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, captured.method)
	assert.Equal(t, "/rest/v1/widgets", captured.path)
	assert.Contains(t, captured.query, "select=id%2Cname")
	assert.Contains(t, captured.query, "name=eq.a")
	assert.Contains(t, captured.query, "order=id.desc")
	assert.Contains(t, captured.query, "limit=10")
	assert.Equal(t, "service-key", captured.apikey)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
}

func TestTableQuery_InEncodesMembership(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[]`, &captured)

	var rows []testRow
	err := client.Table("widgets").In("id", []int64{1, 2, 3}).Get(context.Background(), &rows)
	require.NoError(t, err)

	assert.Contains(t, captured.query, "id=in.%281%2C2%2C3%29")
}

func TestTableQuery_SingleReturnsErrNoRows(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[]`, &captured)

	var row testRow
	err := client.Table("widgets").Eq("id", int64(42)).Single(context.Background(), &row)
	assert.ErrorIs(t, err, remote.ErrNoRows)
}

func TestTableQuery_SingleTakesFirstRow(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[{"id":9,"name":"newest"},{"id":3,"name":"older"}]`, &captured)

	var row testRow
	err := client.Table("widgets").Eq("name", "dup").Order("id", true).Single(context.Background(), &row)
	require.NoError(t, err)
	assert.Equal(t, int64(9), row.ID)
}

func TestTableQuery_InsertSendsPreferAndDecodes(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusCreated, `[{"id":7,"name":"made"}]`, &captured)

	var created testRow
	err := client.Table("widgets").Insert(context.Background(), testRow{Name: "made"}, &created)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "return=representation", captured.prefer)
	assert.Equal(t, int64(7), created.ID)
}

func TestTableQuery_InsertDecodesBareObject(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusCreated, `{"id":8,"name":"made"}`, &captured)

	var created testRow
	err := client.Table("widgets").Insert(context.Background(), testRow{Name: "made"}, &created)
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.ID)
}

func TestTableQuery_UpdateFiltersAndPatches(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[{"id":4,"name":"patched"}]`, &captured)

	var updated testRow
	err := client.Table("widgets").
		Eq("id", int64(4)).
		Update(context.Background(), map[string]string{"name": "patched"}, &updated)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, captured.method)
	assert.Contains(t, captured.query, "id=eq.4")
	assert.Equal(t, "patched", updated.Name)
}

func TestTableQuery_DeleteReportsCount(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusOK, `[{"id":1},{"id":2}]`, &captured)

	n, err := client.Table("widgets").Eq("name", "stale").Delete(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, captured.method)
	assert.Equal(t, 2, n)
}

func TestTableQuery_ErrorStatusSurfaces(t *testing.T) {
	var captured capturedRequest
	client := newTestClient(t, http.StatusUnauthorized, `{"message":"bad key"}`, &captured)

	var rows []testRow
	err := client.Table("widgets").Get(context.Background(), &rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
