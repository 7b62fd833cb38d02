package common

import (
	"context"
	"errors"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(
	ctx context.Context, requiredRoles ...entity.UserRole,
) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errors.New("no authenticated user")
	}

	user, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, role := range requiredRoles {
		if user.Role == role {
			return nil
		}
	}

	return errors.New("user role does not have permission")
}
