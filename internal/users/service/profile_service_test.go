package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelime/namelime-backend/internal/users/domain"
)

type fakeProfileStore struct {
	profile      *domain.Profile
	getErr       error
	created      *domain.Profile
	createErr    error
	expirySet    *time.Time
	downgrades   int
	downgradeErr error
	logins       int
}

func (f *fakeProfileStore) Get(context.Context, string) (*domain.Profile, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	if f.profile == nil {
		return nil, false, nil
	}
	cp := *f.profile
	return &cp, true, nil
}

func (f *fakeProfileStore) Create(_ context.Context, p *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = p
	return nil
}

func (f *fakeProfileStore) SetPlanExpiry(_ context.Context, _ string, expiresAt time.Time) error {
	f.expirySet = &expiresAt
	return nil
}

func (f *fakeProfileStore) Downgrade(context.Context, string) error {
	f.downgrades++
	return f.downgradeErr
}

func (f *fakeProfileStore) TouchLogin(context.Context, string) error {
	f.logins++
	return nil
}

var loginTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(repo *fakeProfileStore) *ProfileService {
	s := NewProfileService(repo, zerolog.Nop())
	s.now = func() time.Time { return loginTime }
	return s
}

func TestEnsureProfileCreatesWithSignupDefaults(t *testing.T) {
	repo := &fakeProfileStore{}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{
		UID: "user-1", DisplayName: "Ada", Email: "ada@example.com", PhotoURL: "https://img",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, domain.PlanFree, p.Plan)
	assert.Equal(t, domain.DefaultCredits, p.Credits)
	assert.Equal(t, "user", p.Role)
	assert.Equal(t, "https://img", p.AvatarURL)
}

func TestEnsureProfileDefaultsBlankDisplayName(t *testing.T) {
	repo := &fakeProfileStore{}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{UID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, "User", p.Name)
}

func TestEnsureProfileProviderIdentityWins(t *testing.T) {
	repo := &fakeProfileStore{profile: &domain.Profile{
		ID: "user-1", Name: "Old Name", Email: "old@example.com", Plan: domain.PlanFree,
	}}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{
		UID: "user-1", DisplayName: "New Name", Email: "new@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", p.Name)
	assert.Equal(t, "new@example.com", p.Email)
	assert.Equal(t, 1, repo.logins)
}

func TestEnsureProfileBackfillsMissingProExpiry(t *testing.T) {
	repo := &fakeProfileStore{profile: &domain.Profile{
		ID: "user-1", Plan: domain.PlanPro, IsPlanActive: true,
	}}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{UID: "user-1"})

	require.NoError(t, err)
	require.NotNil(t, repo.expirySet)
	assert.Equal(t, loginTime.AddDate(0, 0, 30), *repo.expirySet)
	assert.Equal(t, domain.PlanPro, p.Plan)
	assert.NotEmpty(t, p.PlanExpiresAt)
}

func TestEnsureProfileDowngradesExpiredPro(t *testing.T) {
	repo := &fakeProfileStore{profile: &domain.Profile{
		ID:            "user-1",
		Plan:          domain.PlanPro,
		IsPlanActive:  true,
		PlanExpiresAt: loginTime.Add(-time.Hour).Format(time.RFC3339),
	}}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{UID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, p.Plan)
	assert.False(t, p.IsPlanActive)
	assert.Equal(t, 1, repo.downgrades)
}

func TestEnsureProfileDowngradeWriteFailureStillReturnsFree(t *testing.T) {
	repo := &fakeProfileStore{
		profile: &domain.Profile{
			ID:            "user-1",
			Plan:          domain.PlanPro,
			PlanExpiresAt: loginTime.Add(-time.Hour).Format(time.RFC3339),
		},
		downgradeErr: errors.New("write failed"),
	}
	s := newTestService(repo)

	p, err := s.EnsureProfile(context.Background(), AuthUser{UID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, p.Plan)
}

func TestEnsureProfileGetErrorPropagates(t *testing.T) {
	repo := &fakeProfileStore{getErr: errors.New("store down")}
	s := newTestService(repo)

	_, err := s.EnsureProfile(context.Background(), AuthUser{UID: "user-1"})

	assert.Error(t, err)
}
