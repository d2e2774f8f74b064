package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharath018/event-management-backend/config"
)

type fakeAuthRepo struct {
	nextID uint
	users  map[string]*User // keyed by email
	roles  map[string]UserRole
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		nextID: 1,
		users:  map[string]*User{},
		roles: map[string]UserRole{
			RoleNameAdmin: {ID: 1, RoleName: RoleNameAdmin},
			RoleNameUser:  {ID: 2, RoleName: RoleNameUser},
		},
	}
}

func (f *fakeAuthRepo) Create(u *User) error {
	if _, exists := f.users[u.Email]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	u.ID = f.nextID
	f.nextID++
	for _, role := range f.roles {
		if role.ID == u.RoleID {
			u.Role = role
		}
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeAuthRepo) FindByEmail(email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeAuthRepo) FindByID(id uint) (User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return User{}, errors.New("record not found")
}

func (f *fakeAuthRepo) FindRoleByName(name string) (*UserRole, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &role, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())

	err := svc.Register(RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)

	// email is normalized to lower case
	stored, ok := repo.users["alice@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "s3cret!pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret!pass")))

	t.Run("login with correct password", func(t *testing.T) {
		pair, user, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "s3cret!pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "alice@example.com", user.Email)

		token, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
			return []byte("access-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(user.ID), claims["user_id"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "wrong"})
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := svc.Login(LoginRequest{Email: "bob@example.com", Password: "whatever"})
		assert.EqualError(t, err, "invalid credentials")
	})
}

func TestRefresh(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewService(repo, testConfig())

	require.NoError(t, svc.Register(RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret!pass",
	}))
	pair, _, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "s3cret!pass"})
	require.NoError(t, err)

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		access, err := svc.Refresh(pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(pair.AccessToken)
		assert.EqualError(t, err, "invalid refresh token")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.Refresh("not.a.token")
		assert.EqualError(t, err, "invalid refresh token")
	})
}
