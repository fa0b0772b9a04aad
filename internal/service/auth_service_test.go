package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
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

func newTestAuth() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(store, "test-secret", 30), store
}

func validRegister() RegisterData {
	return RegisterData{
		FirstName: "Mary",
		LastName:  "Smith",
		Email:     "mary@example.com",
		Password:  "Str0ngPass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuth()

	user, token, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.Activebool)
	assert.NotNil(t, user.PasswordHash)

	logged, token2, err := svc.Login(context.Background(), "mary@example.com", "Str0ngPass")
	require.NoError(t, err)
	assert.NotEmpty(t, token2)
	assert.Equal(t, user.CustomerID, logged.CustomerID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth()

	_, _, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	// Email duplicado responde 400, no 409.
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Equal(t, "Email already registered", apperr.Detail(err, false))
}

func TestRegisterPasswordRules(t *testing.T) {
	svc, _ := newTestAuth()

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "alllower1"},
		{"no lowercase", "ALLUPPER1"},
		{"no digit", "NoDigitsHere"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validRegister()
			data.Password = tc.password
			_, _, err := svc.Register(context.Background(), data)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuth()
	_, _, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "mary@example.com", "WrongPass1")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuth()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "Str0ngPass")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, store := newTestAuth()
	_, _, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	store.byEmail["mary@example.com"].Activebool = false

	_, _, err = svc.Login(context.Background(), "mary@example.com", "Str0ngPass")
	require.Error(t, err)
	// Cuenta desactivada es 400, distinto de credenciales malas.
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuth()
	user, token, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	got, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestVerifyTokenBadSignature(t *testing.T) {
	svc, _ := newTestAuth()
	other := NewAuthService(newFakeUserStore(), "other-secret", 30)

	_, token, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = other.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestVerifyTokenUnknownSubject(t *testing.T) {
	svc, store := newTestAuth()
	_, token, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	delete(store.byEmail, "mary@example.com")

	_, err = svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestVerifyTokenInactiveUser(t *testing.T) {
	svc, store := newTestAuth()
	_, token, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	store.byEmail["mary@example.com"].Activebool = false

	_, err = svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestGetUserValidation(t *testing.T) {
	svc, _ := newTestAuth()

	_, err := svc.GetUser(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))

	_, err = svc.GetUser(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}
