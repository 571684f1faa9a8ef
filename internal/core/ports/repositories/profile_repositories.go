package repositories

import (
	"context"
	"time"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// ProfileReader defines read operations for profile data
type ProfileReader interface {
	// FindProfileByID retrieves a specific profile by its ID.
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)

	// FindProfileByEmail retrieves a profile by its unique email.
	FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// FindProfileByProviderID retrieves a profile by external auth provider subject.
	FindProfileByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error)

	// FindProfiles retrieves a paginated list of profiles.
	FindProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error)

	// FindActiveProfiles retrieves all active, non-deleted profiles.
	// Used by billing name matching and leaderboard aggregation.
	FindActiveProfiles(ctx context.Context) ([]domain.Profile, error)
}

// ProfileWriter defines write operations for profile data
type ProfileWriter interface {
	// SaveProfile persists a new profile.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateProfile updates an existing profile's details.
	UpdateProfile(ctx context.Context, profile domain.Profile) error
}

// ProfileLifecycleManager defines operations for managing profile lifecycle
type ProfileLifecycleManager interface {
	// MarkProfileDeleted marks a profile as deleted (soft delete).
	MarkProfileDeleted(ctx context.Context, profileID string, deletedAt time.Time, deletedBy string) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
	ProfileLifecycleManager
}
