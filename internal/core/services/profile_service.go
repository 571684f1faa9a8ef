package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/utils"
)

// profileService implements the ProfileSvcFacade.
type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
	teamRepo    portsrepo.TeamRepositoryFacade
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade, teamRepo portsrepo.TeamRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
	}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// requirePrivileged checks the requesting user holds a role allowed to
// manage other profiles.
func (s *profileService) requirePrivileged(ctx context.Context, requestingUserID string) (*domain.Profile, error) {
	requester, err := s.profileRepo.FindProfileByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load requesting profile: %w", err)
	}
	if !requester.RoleType.IsPrivileged() {
		return nil, fmt.Errorf("role %s may not manage users: %w", requester.RoleType, apperrors.ErrForbidden)
	}
	return requester, nil
}

func (s *profileService) CreateProfile(ctx context.Context, req dto.CreateProfileRequest, creatorID string) (*domain.Profile, error) {
	if _, err := s.requirePrivileged(ctx, creatorID); err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		if _, err := s.teamRepo.FindTeamByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: team %s not found", apperrors.ErrValidation, *req.TeamID)
			}
			return nil, fmt.Errorf("failed to validate team: %w", err)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	profile := domain.Profile{
		ProfileID:    uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		RoleType:     domain.RoleType(req.RoleType),
		TeamID:       req.TeamID,
		IsActive:     true,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to save profile", slog.String("email", profile.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Profile created", slog.String("profile_id", profile.ProfileID), slog.String("role", req.RoleType))
	return &profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profileID string, req dto.UpdateProfileRequest, requestingUserID string) (*domain.Profile, error) {
	if _, err := s.requirePrivileged(ctx, requestingUserID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.RoleType != nil {
		profile.RoleType = domain.RoleType(*req.RoleType)
	}
	if req.TeamID != nil {
		if *req.TeamID == "" {
			profile.TeamID = nil
		} else {
			if _, err := s.teamRepo.FindTeamByID(ctx, *req.TeamID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: team %s not found", apperrors.ErrValidation, *req.TeamID)
				}
				return nil, fmt.Errorf("failed to validate team: %w", err)
			}
			profile.TeamID = req.TeamID
		}
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		profile.PasswordHash = hash
	}

	profile.LastUpdatedAt = time.Now()
	profile.LastUpdatedBy = requestingUserID

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("profile_id", profileID))
		return nil, err
	}

	s.LogInfo(ctx, "Profile updated", slog.String("profile_id", profileID))
	return profile, nil
}

func (s *profileService) DeactivateProfile(ctx context.Context, profileID string, requestingUserID string) error {
	if _, err := s.requirePrivileged(ctx, requestingUserID); err != nil {
		return err
	}
	if profileID == requestingUserID {
		return fmt.Errorf("%w: cannot deactivate own profile", apperrors.ErrValidation)
	}

	if err := s.profileRepo.MarkProfileDeleted(ctx, profileID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate profile", slog.String("profile_id", profileID))
		return err
	}

	s.LogInfo(ctx, "Profile deactivated", slog.String("profile_id", profileID))
	return nil
}

func (s *profileService) GetProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	return s.profileRepo.FindProfileByID(ctx, profileID)
}

func (s *profileService) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return s.profileRepo.FindProfileByEmail(ctx, email)
}

func (s *profileService) ListProfiles(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	return s.profileRepo.FindProfiles(ctx, limit, offset)
}

func (s *profileService) ListActiveProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.profileRepo.FindActiveProfiles(ctx)
}

// AuthenticateProfile verifies email/password credentials for local login.
func (s *profileService) AuthenticateProfile(ctx context.Context, email, password string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up profile for login: %w", err)
	}

	if !profile.IsActive {
		return nil, apperrors.ErrForbidden
	}
	if !utils.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return profile, nil
}

// FindOrCreateFromGoogle resolves a verified Google identity to a profile.
// First-time sign-ins are provisioned as inactive BD profiles; an admin
// assigns the proper role afterwards.
func (s *profileService) FindOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Profile, error) {
	if !info.EmailVerified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	profile, err := s.profileRepo.FindProfileByProviderID(ctx, domain.ProviderGoogle, info.ProviderUserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google profile: %w", err)
	}

	// Link to an existing local profile with the same email when present.
	existing, err := s.profileRepo.FindProfileByEmail(ctx, info.Email)
	if err == nil {
		existing.AuthProvider = domain.ProviderGoogle
		existing.ProviderUserID = &info.ProviderUserID
		existing.LastUpdatedAt = time.Now()
		existing.LastUpdatedBy = existing.ProfileID
		if err := s.profileRepo.UpdateProfile(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to link google identity: %w", err)
		}
		s.LogInfo(ctx, "Linked google identity to existing profile", slog.String("profile_id", existing.ProfileID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile by email: %w", err)
	}

	now := time.Now()
	newProfile := domain.Profile{
		ProfileID:      uuid.NewString(),
		Name:           info.Name,
		Email:          strings.ToLower(info.Email),
		RoleType:       domain.RoleBD,
		IsActive:       false, // Activated by an admin once a role is assigned
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &info.ProviderUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "google-signup",
			LastUpdatedAt: now,
			LastUpdatedBy: "google-signup",
		},
	}
	if err := s.profileRepo.SaveProfile(ctx, newProfile); err != nil {
		return nil, fmt.Errorf("failed to provision google profile: %w", err)
	}

	s.LogInfo(ctx, "Provisioned profile from google sign-in", slog.String("profile_id", newProfile.ProfileID))
	return &newProfile, nil
}
