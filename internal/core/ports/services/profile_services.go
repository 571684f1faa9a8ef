package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// ProfileReaderSvc defines read operations for profile data
type ProfileReaderSvc interface {
	// GetProfileByID retrieves a profile by ID.
	GetProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)

	// GetProfileByEmail retrieves a profile by email.
	GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// ListProfiles retrieves a paginated list of profiles.
	ListProfiles(ctx context.Context, limit, offset int) ([]domain.Profile, error)

	// ListActiveProfiles retrieves all active profiles.
	ListActiveProfiles(ctx context.Context) ([]domain.Profile, error)
}

// ProfileWriterSvc defines write operations for profile data
type ProfileWriterSvc interface {
	// CreateProfile creates a new profile. Caller must hold a privileged role.
	CreateProfile(ctx context.Context, req dto.CreateProfileRequest, creatorID string) (*domain.Profile, error)

	// UpdateProfile updates an existing profile. Caller must hold a privileged role.
	UpdateProfile(ctx context.Context, profileID string, req dto.UpdateProfileRequest, requestingUserID string) (*domain.Profile, error)
}

// ProfileLifecycleSvc defines operations for managing profile lifecycle
type ProfileLifecycleSvc interface {
	// DeactivateProfile marks a profile as deleted (soft delete).
	DeactivateProfile(ctx context.Context, profileID string, requestingUserID string) error
}

// ProfileAuthSvc defines operations for profile authentication
type ProfileAuthSvc interface {
	// AuthenticateProfile authenticates a profile with email and password.
	AuthenticateProfile(ctx context.Context, email, password string) (*domain.Profile, error)

	// FindOrCreateFromGoogle resolves a Google identity to a profile,
	// provisioning a new inactive-role profile on first sign-in.
	FindOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Profile, error)
}

// ProfileSvcFacade combines all profile-related service interfaces
type ProfileSvcFacade interface {
	ProfileReaderSvc
	ProfileWriterSvc
	ProfileLifecycleSvc
	ProfileAuthSvc
}
