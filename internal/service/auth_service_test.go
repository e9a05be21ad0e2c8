package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/labtracker-service/internal/auth"
	"github.com/spec-kit/labtracker-service/internal/config"
	"github.com/spec-kit/labtracker-service/internal/domain"
	"github.com/spec-kit/labtracker-service/internal/events"
)

type memUserRepo struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*domain.User
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		}
	}
	r.seq++
	user.ID = strconv.Itoa(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range r.users {
		if existing.ID == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByLogin(_ context.Context, usernameOrEmail string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return cloneUser(u), nil
		}
	}
	return nil, pgx.ErrNoRows
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			JWTAlgorithm:          "HS256",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testConfig(), repo, dispatcher)

	user, err := svc.Register(context.Background(), "bob", "b@x.com", "Secret123!")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected default roles: %v", user.Roles)
	}
	if user.PasswordHash == "Secret123!" {
		t.Fatalf("password stored in plaintext")
	}
	if !auth.CheckPassword(user.PasswordHash, "Secret123!") {
		t.Fatalf("stored hash does not verify")
	}

	recorded := dispatcher.recorded()
	if len(recorded) != 1 || recorded[0].Type != events.EventUserRegistered {
		t.Fatalf("expected user_registered event, got %v", recorded)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	if _, err := svc.Register(context.Background(), "bob", "b@x.com", "Secret123!"); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other@x.com", "Secret123!"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	if _, err := svc.Register(context.Background(), "bob", "b@x.com", "Secret123!"); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "robert", "b@x.com", "Secret123!"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// Two concurrent registrations can both pass the advisory pre-checks; the
// database unique constraint rejects the second insert and the violation
// must surface as the same conflict outcome.
func TestAuthService_Register_InsertRace(t *testing.T) {
	repo := newMemUserRepo()
	repo.createErr = &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	svc := NewAuthService(testConfig(), repo, nil)

	if _, err := svc.Register(context.Background(), "bob", "b@x.com", "Secret123!"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists from constraint violation, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(testConfig(), newMemUserRepo(), nil)

	for _, tc := range []struct{ username, email, password string }{
		{"", "b@x.com", "pw"},
		{"bob", "", "pw"},
		{"bob", "b@x.com", ""},
	} {
		if _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
}

func TestAuthService_Login_ByUsernameOrEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	registered, err := svc.Register(context.Background(), "alice", "alice@x.com", "correct-pw")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	for _, login := range []string{"alice", "alice@x.com"} {
		user, token, exp, err := svc.Login(context.Background(), login, "correct-pw")
		if err != nil {
			t.Fatalf("login via %q error: %v", login, err)
		}
		if user.ID != registered.ID {
			t.Fatalf("login via %q resolved wrong identity", login)
		}
		if token == "" || !exp.After(time.Now()) {
			t.Fatalf("login via %q returned unusable token", login)
		}

		claims, err := svc.TokenManager().ParseToken(token)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if claims.Subject != "alice" {
			t.Fatalf("unexpected token subject: %q", claims.Subject)
		}
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "correct-pw"); err != nil {
		t.Fatalf("register error: %v", err)
	}

	_, _, _, wrongPw := svc.Login(context.Background(), "alice", "wrong-pw")
	_, _, _, unknown := svc.Login(context.Background(), "nobody", "anything")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPw != unknown {
		t.Fatalf("failure kinds must be indistinguishable: %v vs %v", wrongPw, unknown)
	}
}
