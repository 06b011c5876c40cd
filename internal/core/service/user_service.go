package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// UserService implements profile management and user administration.
type UserService struct {
	users      ports.UserRepository
	properties ports.PropertyRepository
	logger     zerolog.Logger
}

func NewUserService(users ports.UserRepository, properties ports.PropertyRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, properties: properties, logger: logger}
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, input ports.UpdateProfileInput) (*ports.ProfileUpdateResult, error) {
	if err := domain.Decide(actor, domain.ActionUpdateProfile, ""); err != nil {
		return nil, err
	}

	current, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	var changed []string

	if input.Name != nil && *input.Name != current.Name {
		fields["name"] = *input.Name
		changed = append(changed, "name")
	}

	if input.Email != nil && *input.Email != current.Email {
		other, err := s.users.FindByEmail(ctx, *input.Email)
		if err == nil && other.ID != actor.ID {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && err != domain.ErrUserNotFound {
			return nil, err
		}
		fields["email"] = *input.Email
		changed = append(changed, "email")
	}

	if input.Role != nil && *input.Role != current.Role {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidInput
		}
		fields["role"] = *input.Role
		changed = append(changed, "role")
	}

	if input.Password != nil && *input.Password != "" {
		// Submitting the current password again is a silent no-op: the
		// update succeeds and the field is reported unchanged.
		if bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(*input.Password)) != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			fields["password_hash"] = string(hash)
			changed = append(changed, "password")
		}
	}

	if len(fields) == 0 {
		return &ports.ProfileUpdateResult{User: current}, nil
	}

	updated, err := s.users.UpdateFields(ctx, actor.ID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", actor.ID).Strs("changed", changed).Msg("profile updated")
	return &ports.ProfileUpdateResult{User: updated, ChangedFields: changed}, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, actor *domain.User) error {
	if err := domain.Decide(actor, domain.ActionDeleteProfile, ""); err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, actor.ID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, actor.ID); err != nil {
		return err
	}

	// Cascade: listings with a deleted owner would surface half-empty search
	// results, so they go with the account. Best effort, not transactional.
	removed, err := s.properties.DeleteByOwner(ctx, actor.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", actor.ID).Msg("failed to remove listings of deleted user")
	} else if removed > 0 {
		s.logger.Info().Str("user_id", actor.ID).Int64("listings_removed", removed).Msg("cascade removed listings")
	}

	s.logger.Info().Str("user_id", actor.ID).Msg("account deleted")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := domain.Decide(actor, domain.ActionListUsers, ""); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *UserService) BlockUser(ctx context.Context, actor *domain.User, targetID string) error {
	return s.setBlocked(ctx, actor, domain.ActionBlockUser, targetID, true)
}

func (s *UserService) UnblockUser(ctx context.Context, actor *domain.User, targetID string) error {
	return s.setBlocked(ctx, actor, domain.ActionUnblockUser, targetID, false)
}

func (s *UserService) setBlocked(ctx context.Context, actor *domain.User, action domain.Action, targetID string, blocked bool) error {
	if err := domain.Decide(actor, action, ""); err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}

	// Idempotent: setting an already-set flag succeeds.
	if err := s.users.SetBlocked(ctx, targetID, blocked); err != nil {
		return err
	}

	s.logger.Info().Str("admin_id", actor.ID).Str("target_id", targetID).Bool("blocked", blocked).Msg("block flag set")
	return nil
}
