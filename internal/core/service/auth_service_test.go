package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukapro/dukapro/internal/core/domain"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *domain.User) (int64, error) {
	if _, ok := f.users[u.Username]; ok {
		return 0, domain.ErrUsernameTaken
	}
	f.nextID++
	stored := *u
	stored.ID = f.nextID
	f.users[u.Username] = &stored
	return f.nextID, nil
}

type fakeSessionRepo struct {
	sessions map[string]int64
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]int64)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, userID int64) (string, error) {
	f.nextID++
	token := "token-" + string(rune('a'+f.nextID))
	f.sessions[token] = userID
	return token, nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, token string) (int64, error) {
	userID, ok := f.sessions[token]
	if !ok {
		return 0, domain.ErrNoSession
	}
	return userID, nil
}

func (f *fakeSessionRepo) Refresh(ctx context.Context, token string) error { return nil }

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := repo.CreateUser(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Shop Keeper",
	})
	require.NoError(t, err)
	u := repo.users[username]
	u.ID = id
	return u
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seedUser(t, users, "mary", "duka1234")
	svc := NewAuthService(users, sessions, zaptest.NewLogger(t))

	user, token, err := svc.Login(context.Background(), "mary", "duka1234")

	require.NoError(t, err)
	assert.Equal(t, "mary", user.Username)
	assert.NotEmpty(t, token)

	userID, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seedUser(t, users, "mary", "duka1234")
	svc := NewAuthService(users, sessions, zaptest.NewLogger(t))

	_, _, err := svc.Login(context.Background(), "mary", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, sessions.sessions, "no session on failed login")
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionRepo(), zaptest.NewLogger(t))

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeSessionRepo(), zaptest.NewLogger(t))

	user, err := svc.Register(context.Background(), "juma", "secret99", "Juma K")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored := users.users["juma"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret99", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret99")))
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionRepo(), zaptest.NewLogger(t))

	_, err := svc.Register(context.Background(), " ", "short", "")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Details, 3)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeSessionRepo(), zaptest.NewLogger(t))

	_, err := svc.Register(context.Background(), "juma", "secret99", "Juma K")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "juma", "other123", "Other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAuthenticate_StaleToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionRepo(), zaptest.NewLogger(t))

	_, err := svc.Authenticate(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionUser_ReturnsFullRecord(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seeded := seedUser(t, users, "mary", "duka1234")
	svc := NewAuthService(users, sessions, zaptest.NewLogger(t))

	_, token, err := svc.Login(context.Background(), "mary", "duka1234")
	require.NoError(t, err)

	user, err := svc.SessionUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, "mary", user.Username)
	assert.Equal(t, "Shop Keeper", user.Name)
}

func TestSessionUser_StaleToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeSessionRepo(), zaptest.NewLogger(t))

	_, err := svc.SessionUser(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionUser_DeletedUser(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seedUser(t, users, "mary", "duka1234")
	svc := NewAuthService(users, sessions, zaptest.NewLogger(t))

	_, token, err := svc.Login(context.Background(), "mary", "duka1234")
	require.NoError(t, err)

	delete(users.users, "mary")

	_, err = svc.SessionUser(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLogout_RemovesSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	seedUser(t, users, "mary", "duka1234")
	svc := NewAuthService(users, sessions, zaptest.NewLogger(t))

	_, token, err := svc.Login(context.Background(), "mary", "duka1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
