package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moto-club.backend/internal/config"
	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/pkg/crypto"
)

type catalogStub struct {
	items []*entities.Achievement
	err   error
}

func (s *catalogStub) UpsertCatalog(_ context.Context, items []*entities.Achievement) error {
	s.items = items
	return s.err
}

type userStoreStub struct {
	byEmail   map[string]*entities.User
	lookupErr error
	created   []*entities.User
}

func (s *userStoreStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userStoreStub) Create(_ context.Context, u *entities.User) error {
	s.created = append(s.created, u)
	return nil
}

func TestAchievements(t *testing.T) {
	w := &catalogStub{}
	require.NoError(t, Achievements(context.Background(), w))

	names := make([]string, 0, len(w.items))
	for _, a := range w.items {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, entities.AchievementRoadCaptain)
	assert.Contains(t, names, entities.AchievementFirstRideCompleted)

	err := Achievements(context.Background(), &catalogStub{err: errors.New("boom")})
	assert.ErrorContains(t, err, "failed to seed achievements")
}

func TestAdmin_SkipsWithoutCredentials(t *testing.T) {
	users := &userStoreStub{}

	created, err := Admin(context.Background(), users, config.SeedConfig{AdminEmail: "boss@club.test"})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, users.created)
}

func TestAdmin_CreatesVerifiedAdmin(t *testing.T) {
	orig := hashPassword
	hashPassword = func(p string) (string, error) { return crypto.HashPasswordWithCost(p, 4) }
	t.Cleanup(func() { hashPassword = orig })

	users := &userStoreStub{}
	created, err := Admin(context.Background(), users, config.SeedConfig{
		AdminEmail:    " Boss@Club.test ",
		AdminPassword: "s3cret!",
	})

	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, users.created, 1)
	admin := users.created[0]
	assert.Equal(t, "boss@club.test", admin.Email)
	assert.Equal(t, "Club Admin", admin.Name)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsVerified)
	assert.Len(t, admin.VIN, 17)
	assert.True(t, crypto.CheckPassword("s3cret!", admin.PasswordHash))
}

func TestAdmin_ExistingAccountUntouched(t *testing.T) {
	users := &userStoreStub{byEmail: map[string]*entities.User{"boss@club.test": {Email: "boss@club.test"}}}

	created, err := Admin(context.Background(), users, config.SeedConfig{AdminEmail: "boss@club.test", AdminPassword: "x"})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, users.created)
}

func TestAdmin_LookupFailure(t *testing.T) {
	users := &userStoreStub{lookupErr: errors.New("db gone")}

	_, err := Admin(context.Background(), users, config.SeedConfig{AdminEmail: "boss@club.test", AdminPassword: "x"})

	assert.ErrorContains(t, err, "failed to look up admin")
}
