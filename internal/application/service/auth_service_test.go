package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cekapguard/agency-api/internal/domain/entity"
	"github.com/cekapguard/agency-api/internal/domain/enum"
	"github.com/cekapguard/agency-api/pkg/apperror"
	"github.com/cekapguard/agency-api/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeStaffRepo struct {
	members map[uuid.UUID]*entity.StaffMember
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: make(map[uuid.UUID]*entity.StaffMember)}
}

func (r *fakeStaffRepo) Create(_ context.Context, member *entity.StaffMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.StaffMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*entity.StaffMember, error) {
	for _, m := range r.members {
		if strings.EqualFold(m.Email, email) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) List(_ context.Context) ([]entity.StaffMember, error) {
	var out []entity.StaffMember
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.members, id)
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeStaffRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	staffRepo := newFakeStaffRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, staffRepo, jwtManager), userRepo, staffRepo
}

func seedLogin(t *testing.T, userRepo *fakeUserRepo, email, password string, role enum.UserRole) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &entity.User{Email: email, Password: hash, Name: "Siti", Role: role}
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func TestLoginOwnerBypassesRegistry(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)
	seedLogin(t, userRepo, "owner@cekapguard.com", "correct-horse", enum.UserRoleOwner)

	out, err := svc.Login(context.Background(), &LoginInput{
		Email:    "owner@cekapguard.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
}

func TestLoginStaffRequiresRegistryEntry(t *testing.T) {
	svc, userRepo, staffRepo := newAuthService(t)
	seedLogin(t, userRepo, "siti@cekapguard.com", "correct-horse", enum.UserRoleStaff)
	ctx := context.Background()

	_, err := svc.Login(ctx, &LoginInput{Email: "siti@cekapguard.com", Password: "correct-horse"})
	require.ErrorIs(t, err, apperror.ErrNotInStaffRegistry)

	require.NoError(t, staffRepo.Create(ctx, &entity.StaffMember{
		Name:  "Siti",
		Email: "siti@cekapguard.com",
	}))

	out, err := svc.Login(ctx, &LoginInput{Email: "siti@cekapguard.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)
	seedLogin(t, userRepo, "owner@cekapguard.com", "correct-horse", enum.UserRoleOwner)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "owner@cekapguard.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@cekapguard.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshRevokedWhenRemovedFromRegistry(t *testing.T) {
	svc, userRepo, staffRepo := newAuthService(t)
	seedLogin(t, userRepo, "siti@cekapguard.com", "correct-horse", enum.UserRoleStaff)
	ctx := context.Background()

	member := &entity.StaffMember{Name: "Siti", Email: "siti@cekapguard.com"}
	require.NoError(t, staffRepo.Create(ctx, member))

	out, err := svc.Login(ctx, &LoginInput{Email: "siti@cekapguard.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, staffRepo.Delete(ctx, member.ID))

	_, err = svc.RefreshToken(ctx, out.RefreshToken)
	require.ErrorIs(t, err, apperror.ErrNotInStaffRegistry)
}
