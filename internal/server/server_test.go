package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/VictorWong123/shopnsplit/internal/auth"
	"github.com/VictorWong123/shopnsplit/internal/calculator"
	"github.com/VictorWong123/shopnsplit/internal/service"
	"github.com/VictorWong123/shopnsplit/internal/session"
	"github.com/VictorWong123/shopnsplit/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	receiptSvc := service.NewReceiptService(store)

	srv := httptest.NewServer(New(authSvc, receiptSvc, jwtManager).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func register(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":       email,
		"displayName": "Tester",
		"password":    "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out authResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func sampleState() session.State {
	return session.State{
		Participants: []string{"Alice", "Bob"},
		SharedItems:  []calculator.Item{{Name: "Milk", Price: "4.00"}},
		Groups: []calculator.Group{
			{Members: []string{"Alice", "Bob"}, Items: []calculator.Item{{Name: "Wine", Price: "10.00"}}},
		},
		Personal: []calculator.PersonalBucket{
			{Owner: "Alice", Items: []calculator.Item{{Name: "Gum", Price: "1.50"}}},
		},
	}
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	token := register(t, srv, "alice@example.com")
	require.NotEmpty(t, token)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "another pass",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculate(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/calculate", "", sampleState())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out calculateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.True(t, out.Totals.Grand.Equal(dec(t, "15.50")))
	require.True(t, out.Validation.SharedItems.OK)
	require.Empty(t, out.Validation.Participants)

	perPerson := map[string]string{}
	for _, p := range out.Totals.PerPerson {
		perPerson[p.Participant] = p.Total.String()
	}
	require.Equal(t, "8.5", perPerson["Alice"])
	require.Equal(t, "7", perPerson["Bob"])
}

func TestCalculate_ReportsProblems(t *testing.T) {
	srv := newTestServer(t)

	state := session.State{
		Participants: []string{"Alice"},
		SharedItems:  []calculator.Item{{Name: "Milk", Price: ""}},
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/calculate", "", state)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out calculateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Validation.Participants)
	require.False(t, out.Validation.SharedItems.OK)
	require.NotEmpty(t, out.Validation.SharedItems.Message)
}

func TestReceiptLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice@example.com")

	save := func(name string) (*http.Response, []byte) {
		payload := map[string]any{
			"displayName":     name,
			"participants":    sampleState().Participants,
			"sharedItems":     sampleState().SharedItems,
			"groups":          sampleState().Groups,
			"personalBuckets": sampleState().Personal,
		}
		return doJSON(t, http.MethodPost, srv.URL+"/api/receipts", token, payload)
	}

	resp, body := save("Friday shop")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var saved struct {
		ID        string `json:"id"`
		ShareSlug string `json:"shareSlug"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))
	require.NotEmpty(t, saved.ID)
	require.NotEmpty(t, saved.ShareSlug)

	// Same content again is a duplicate regardless of display name.
	resp, _ = save("Friday shop again")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/receipts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []receiptSummary
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Friday shop", list[0].DisplayName)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/receipts/"+saved.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/shared/"+saved.ShareSlug, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/receipts/"+saved.ID, token, renameRequest{DisplayName: "Weekly shop"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/receipts/"+saved.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var renamed struct {
		DisplayName string `json:"displayName"`
	}
	require.NoError(t, json.Unmarshal(body, &renamed))
	require.Equal(t, "Weekly shop", renamed.DisplayName)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/receipts/"+saved.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/receipts/"+saved.ID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReceiptOwnership(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "alice@example.com")
	bob := register(t, srv, "bob@example.com")

	state := sampleState()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/receipts", alice, map[string]any{
		"displayName":     "Alice's split",
		"participants":    state.Participants,
		"sharedItems":     state.SharedItems,
		"groups":          state.Groups,
		"personalBuckets": state.Personal,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))

	// Another account cannot see, rename, or delete it.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/receipts/"+saved.ID, bob, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/receipts/"+saved.ID, bob, renameRequest{DisplayName: "hijack"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/receipts/"+saved.ID, bob, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/receipts"},
		{http.MethodGet, "/api/receipts"},
		{http.MethodGet, "/api/receipts/some-id"},
		{http.MethodPatch, "/api/receipts/some-id"},
		{http.MethodDelete, "/api/receipts/some-id"},
	} {
		t.Run(fmt.Sprintf("%s %s", tc.method, tc.path), func(t *testing.T) {
			resp, _ := doJSON(t, tc.method, srv.URL+tc.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			resp, _ = doJSON(t, tc.method, srv.URL+tc.path, "not-a-token", nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestSaveInvalidState(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice@example.com")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/receipts", token, map[string]any{
		"displayName":  "Solo",
		"participants": []string{"Alice"},
		"sharedItems":  []calculator.Item{{Name: "Milk", Price: "4.00"}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
