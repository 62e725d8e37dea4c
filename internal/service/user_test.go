package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/repository"
)

// fakeUserStore is an in-memory UserStore enforcing the unique
// constraints the real schema carries.
type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		switch {
		case u.Username == user.Username:
			return repository.ErrUsernameExists
		case u.Email == user.Email:
			return repository.ErrEmailExists
		case u.APIKey == user.APIKey:
			return repository.ErrAPIKeyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestUserCreate_IssuesAPIKey(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(), nil)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Username: "alice",
		Email:    "alice@x.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected generated ID")
	}
	if user.APIKey == "" {
		t.Error("expected generated API key in the creation response")
	}
	if len(user.APIKey) < 43 {
		t.Errorf("API key too short for 256 bits of entropy: %d chars", len(user.APIKey))
	}
}

func TestUserCreate_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{"empty username", CreateUserInput{Username: "", Email: "a@x.com"}, ErrInvalidUsername},
		{"whitespace username", CreateUserInput{Username: "   ", Email: "a@x.com"}, ErrInvalidUsername},
		{"empty email", CreateUserInput{Username: "a", Email: ""}, ErrInvalidEmail},
		{"no at sign", CreateUserInput{Username: "a", Email: "not-an-email"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeUserStore()
			svc := NewUserService(store, nil)

			_, err := svc.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(store.users) != 0 {
				t.Error("invalid input must not reach the store")
			}
		})
	}
}

func TestUserCreate_DuplicateMapping(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "alice", Email: "alice@x.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(ctx, CreateUserInput{Username: "alice", Email: "other@x.com"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = svc.Create(ctx, CreateUserInput{Username: "bob", Email: "alice@x.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if len(store.users) != 1 {
		t.Errorf("store should retain exactly one row, got %d", len(store.users))
	}
}

func TestUserCreate_DistinctKeysPerUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(), nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateUserInput{Username: "alice", Email: "alice@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := svc.Create(ctx, CreateUserInput{Username: "bob", Email: "bob@x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if a.APIKey == b.APIKey {
		t.Error("users must not share API keys")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
