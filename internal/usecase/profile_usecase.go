package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/onoja123/Modi-backend/internal/domain/user"
	ucprofile "github.com/onoja123/Modi-backend/internal/usecase/profile"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateAbout(ctx context.Context, userID uuid.UUID, about []string) (user.User, error)
	UpdateGoals(ctx context.Context, userID uuid.UUID, goals []string) (user.User, error)
	UpdatePreference(ctx context.Context, userID uuid.UUID, preference []string) (user.User, error)
	UpdateType(ctx context.Context, userID uuid.UUID, t user.Type) (user.User, error)
}

type Profile struct {
	svc *ucprofile.Service
}

func NewProfileUsecase(users user.Repository, cache ucprofile.Cache) *Profile {
	return &Profile{svc: ucprofile.NewService(users, cache)}
}

func (p *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return p.svc.GetProfile(ctx, userID)
}

func (p *Profile) UpdateAbout(ctx context.Context, userID uuid.UUID, about []string) (user.User, error) {
	return p.svc.UpdateAbout(ctx, userID, about)
}

func (p *Profile) UpdateGoals(ctx context.Context, userID uuid.UUID, goals []string) (user.User, error) {
	return p.svc.UpdateGoals(ctx, userID, goals)
}

func (p *Profile) UpdatePreference(ctx context.Context, userID uuid.UUID, preference []string) (user.User, error) {
	return p.svc.UpdatePreference(ctx, userID, preference)
}

func (p *Profile) UpdateType(ctx context.Context, userID uuid.UUID, t user.Type) (user.User, error) {
	return p.svc.UpdateType(ctx, userID, t)
}
