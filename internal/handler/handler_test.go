package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.CustomerID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	u.CustomerID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func registerUser(t *testing.T, svc *service.AuthService) (token string) {
	t.Helper()
	_, token, err := svc.Register(context.Background(), service.RegisterData{
		FirstName: "Mary",
		LastName:  "Smith",
		Email:     "mary@example.com",
		Password:  "Str0ngPass",
	})
	require.NoError(t, err)
	return token
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestWriteErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperr.NotFound("Film not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Film not found", decodeDetail(t, rec))
}

func TestPaginationBounds(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"defaults", "", false},
		{"valid", "?skip=5&limit=50", false},
		{"negative skip", "?skip=-1", true},
		{"zero limit", "?limit=0", true},
		{"limit over cap", "?limit=10001", true},
		{"non numeric", "?limit=abc", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			_, _, err := pagination(r, 10)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func newProtectedHandler(t *testing.T) (*service.AuthService, *fakeUserStore, http.Handler) {
	store := newFakeUserStore()
	authSvc := service.NewAuthService(store, "test-secret", 30)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		require.NotNil(t, u)
		writeJSON(w, http.StatusOK, map[string]string{"email": u.Email})
	})
	return authSvc, store, Auth(authSvc)(next)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	_, _, h := newProtectedHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	_, _, h := newProtectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", decodeDetail(t, rec))
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	authSvc, _, h := newProtectedHandler(t)
	token := registerUser(t, authSvc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mary@example.com")
}

func TestAuthMiddlewareInactiveUser(t *testing.T) {
	authSvc, store, h := newProtectedHandler(t)
	token := registerUser(t, authSvc)
	store.byEmail["mary@example.com"].Activebool = false

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// Cuenta desactivada con token válido: 400, no 401.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Inactive user", decodeDetail(t, rec))
}

func TestAdminOnlyRejectsRegularUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})
	h := AdminOnly()(next)

	user := &models.User{CustomerID: 1, Email: "mary@example.com", Activebool: true}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxUser, user))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeDetail(t, rec))
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})
	h := AdminOnly()(next)

	admin := &models.User{CustomerID: 1, Email: "root@example.com", Activebool: true, IsAdmin: true}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxUser, admin))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
