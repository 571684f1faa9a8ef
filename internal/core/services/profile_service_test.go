package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/core/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/utils"
)

// --- Mock ProfileRepository (based on ProfileService usage) ---
type MockProfileRepository struct {
	mock.Mock
	FindProfileByIDFn         func(ctx context.Context, profileID string) (*domain.Profile, error)
	FindProfileByEmailFn      func(ctx context.Context, email string) (*domain.Profile, error)
	FindProfileByProviderIDFn func(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error)
	FindProfilesFn            func(ctx context.Context, limit, offset int) ([]domain.Profile, error)
	FindActiveProfilesFn      func(ctx context.Context) ([]domain.Profile, error)
	SaveProfileFn             func(ctx context.Context, profile domain.Profile) error
	UpdateProfileFn           func(ctx context.Context, profile domain.Profile) error
	MarkProfileDeletedFn      func(ctx context.Context, profileID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	if m.FindProfileByIDFn != nil {
		return m.FindProfileByIDFn(ctx, profileID)
	}
	args := m.Called(ctx, profileID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.FindProfileByEmailFn != nil {
		return m.FindProfileByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindProfileByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error) {
	if m.FindProfileByProviderIDFn != nil {
		return m.FindProfileByProviderIDFn(ctx, provider, providerUserID)
	}
	args := m.Called(ctx, provider, providerUserID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error) {
	if m.FindProfilesFn != nil {
		return m.FindProfilesFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var profiles []domain.Profile
	if args.Get(0) != nil {
		profiles = args.Get(0).([]domain.Profile)
	}
	return profiles, args.Error(1)
}

func (m *MockProfileRepository) FindActiveProfiles(ctx context.Context) ([]domain.Profile, error) {
	if m.FindActiveProfilesFn != nil {
		return m.FindActiveProfilesFn(ctx)
	}
	args := m.Called(ctx)
	var profiles []domain.Profile
	if args.Get(0) != nil {
		profiles = args.Get(0).([]domain.Profile)
	}
	return profiles, args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	if m.SaveProfileFn != nil {
		return m.SaveProfileFn(ctx, profile)
	}
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, profile)
	}
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) MarkProfileDeleted(ctx context.Context, profileID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkProfileDeletedFn != nil {
		return m.MarkProfileDeletedFn(ctx, profileID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, profileID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock TeamRepository ---
type MockTeamRepository struct {
	mock.Mock
	FindTeamByIDFn func(ctx context.Context, teamID string) (*domain.Team, error)
	FindTeamsFn    func(ctx context.Context) ([]domain.Team, error)
	SaveTeamFn     func(ctx context.Context, team domain.Team) error
	UpdateTeamFn   func(ctx context.Context, team domain.Team) error
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	if m.FindTeamByIDFn != nil {
		return m.FindTeamByIDFn(ctx, teamID)
	}
	args := m.Called(ctx, teamID)
	var team *domain.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*domain.Team)
	}
	return team, args.Error(1)
}

func (m *MockTeamRepository) FindTeams(ctx context.Context) ([]domain.Team, error) {
	if m.FindTeamsFn != nil {
		return m.FindTeamsFn(ctx)
	}
	args := m.Called(ctx)
	var teams []domain.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]domain.Team)
	}
	return teams, args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	if m.SaveTeamFn != nil {
		return m.SaveTeamFn(ctx, team)
	}
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	if m.UpdateTeamFn != nil {
		return m.UpdateTeamFn(ctx, team)
	}
	args := m.Called(ctx, team)
	return args.Error(0)
}

// --- Test Suite ---
type ProfileServiceTestSuite struct {
	suite.Suite
	mockProfileRepo *MockProfileRepository
	mockTeamRepo    *MockTeamRepository
	service         portssvc.ProfileSvcFacade

	adminID string
	admin   *domain.Profile
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.service = services.NewProfileService(suite.mockProfileRepo, suite.mockTeamRepo)

	suite.adminID = uuid.NewString()
	suite.admin = &domain.Profile{
		ProfileID: suite.adminID,
		Name:      "Ops Admin",
		RoleType:  domain.RoleAdmin,
		IsActive:  true,
	}
}

// --- CreateProfile Tests ---

func (suite *ProfileServiceTestSuite) TestCreateProfile_Success() {
	ctx := context.Background()
	req := dto.CreateProfileRequest{
		Name:     "New Seller",
		Email:    " New.Seller@Example.com ",
		Password: "password123",
		RoleType: "BD",
	}

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockProfileRepo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.Email == "new.seller@example.com" && p.RoleType == domain.RoleBD &&
			p.IsActive && p.AuthProvider == domain.ProviderLocal &&
			p.PasswordHash != "" && p.PasswordHash != req.Password
	})).Return(nil).Once()

	created, err := suite.service.CreateProfile(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ProfileID)
	suite.Equal("new.seller@example.com", created.Email)
	suite.True(utils.CheckPasswordHash("password123", created.PasswordHash))
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestCreateProfile_NonPrivilegedForbidden() {
	ctx := context.Background()
	seller := &domain.Profile{ProfileID: suite.adminID, RoleType: domain.RoleBD, IsActive: true}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(seller, nil).Once()

	created, err := suite.service.CreateProfile(ctx, dto.CreateProfileRequest{Name: "x", Email: "x@y.z", Password: "password123", RoleType: "BD"}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(created)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestCreateProfile_UnknownCreatorUnauthorized() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateProfile(ctx, dto.CreateProfileRequest{Name: "x", Email: "x@y.z", Password: "password123", RoleType: "BD"}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(created)
}

func (suite *ProfileServiceTestSuite) TestCreateProfile_UnknownTeamRejected() {
	ctx := context.Background()
	teamID := uuid.NewString()
	req := dto.CreateProfileRequest{Name: "x", Email: "x@y.z", Password: "password123", RoleType: "BD", TeamID: &teamID}

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateProfile(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

// --- UpdateProfile Tests ---

func (suite *ProfileServiceTestSuite) TestUpdateProfile_PartialUpdate() {
	ctx := context.Background()
	targetID := uuid.NewString()
	existing := &domain.Profile{ProfileID: targetID, Name: "Old Name", RoleType: domain.RoleBD, IsActive: true}
	newRole := "Manager"
	inactive := false
	req := dto.UpdateProfileRequest{RoleType: &newRole, IsActive: &inactive}

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, targetID).Return(existing, nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.ProfileID == targetID && p.Name == "Old Name" &&
			p.RoleType == domain.RoleManager && !p.IsActive &&
			p.LastUpdatedBy == suite.adminID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProfile(ctx, targetID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, updated.RoleType)
	suite.False(updated.IsActive)
	suite.Equal("Old Name", updated.Name, "omitted fields keep their value")
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestUpdateProfile_ClearTeam() {
	ctx := context.Background()
	targetID := uuid.NewString()
	teamID := uuid.NewString()
	existing := &domain.Profile{ProfileID: targetID, Name: "Seller", RoleType: domain.RoleBD, TeamID: &teamID, IsActive: true}
	empty := ""
	req := dto.UpdateProfileRequest{TeamID: &empty}

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, targetID).Return(existing, nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.TeamID == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProfile(ctx, targetID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Nil(updated.TeamID)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "FindTeamByID", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestUpdateProfile_TargetNotFound() {
	ctx := context.Background()
	targetID := uuid.NewString()

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockProfileRepo.On("FindProfileByID", ctx, targetID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateProfile(ctx, targetID, dto.UpdateProfileRequest{}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(updated)
}

// --- DeactivateProfile Tests ---

func (suite *ProfileServiceTestSuite) TestDeactivateProfile_Success() {
	ctx := context.Background()
	targetID := uuid.NewString()

	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockProfileRepo.On("MarkProfileDeleted", ctx, targetID, mock.AnythingOfType("time.Time"), suite.adminID).Return(nil).Once()

	err := suite.service.DeactivateProfile(ctx, targetID, suite.adminID)

	suite.Require().NoError(err)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestDeactivateProfile_SelfRejected() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()

	err := suite.service.DeactivateProfile(ctx, suite.adminID, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "MarkProfileDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- AuthenticateProfile Tests ---

func (suite *ProfileServiceTestSuite) TestAuthenticateProfile_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	profile := &domain.Profile{ProfileID: uuid.NewString(), Email: "seller@example.com", PasswordHash: hash, IsActive: true}

	suite.mockProfileRepo.On("FindProfileByEmail", ctx, "seller@example.com").Return(profile, nil).Once()

	got, err := suite.service.AuthenticateProfile(ctx, "seller@example.com", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(profile.ProfileID, got.ProfileID)
}

func (suite *ProfileServiceTestSuite) TestAuthenticateProfile_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	profile := &domain.Profile{ProfileID: uuid.NewString(), Email: "seller@example.com", PasswordHash: hash, IsActive: true}

	suite.mockProfileRepo.On("FindProfileByEmail", ctx, "seller@example.com").Return(profile, nil).Once()

	got, err := suite.service.AuthenticateProfile(ctx, "seller@example.com", "battery-staple")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
}

func (suite *ProfileServiceTestSuite) TestAuthenticateProfile_UnknownEmail() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfileByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateProfile(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "unknown emails must not be distinguishable from bad passwords")
	suite.Nil(got)
}

func (suite *ProfileServiceTestSuite) TestAuthenticateProfile_InactiveForbidden() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	profile := &domain.Profile{ProfileID: uuid.NewString(), Email: "left@example.com", PasswordHash: hash, IsActive: false}

	suite.mockProfileRepo.On("FindProfileByEmail", ctx, "left@example.com").Return(profile, nil).Once()

	got, err := suite.service.AuthenticateProfile(ctx, "left@example.com", "correct-horse")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

// --- FindOrCreateFromGoogle Tests ---

func (suite *ProfileServiceTestSuite) TestFindOrCreateFromGoogle_ExistingLinkedProfile() {
	ctx := context.Background()
	providerID := "google-sub-123"
	profile := &domain.Profile{ProfileID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: &providerID, IsActive: true}
	info := domain.GoogleUserInfo{ProviderUserID: providerID, Email: "seller@example.com", Name: "Seller", EmailVerified: true}

	suite.mockProfileRepo.On("FindProfileByProviderID", ctx, domain.ProviderGoogle, providerID).Return(profile, nil).Once()

	got, err := suite.service.FindOrCreateFromGoogle(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(profile.ProfileID, got.ProfileID)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindProfileByEmail", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestFindOrCreateFromGoogle_LinksLocalProfileByEmail() {
	ctx := context.Background()
	providerID := "google-sub-456"
	local := &domain.Profile{ProfileID: uuid.NewString(), Email: "seller@example.com", AuthProvider: domain.ProviderLocal, IsActive: true}
	info := domain.GoogleUserInfo{ProviderUserID: providerID, Email: "seller@example.com", Name: "Seller", EmailVerified: true}

	suite.mockProfileRepo.On("FindProfileByProviderID", ctx, domain.ProviderGoogle, providerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByEmail", ctx, "seller@example.com").Return(local, nil).Once()
	suite.mockProfileRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.ProfileID == local.ProfileID && p.AuthProvider == domain.ProviderGoogle &&
			p.ProviderUserID != nil && *p.ProviderUserID == providerID
	})).Return(nil).Once()

	got, err := suite.service.FindOrCreateFromGoogle(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(local.ProfileID, got.ProfileID)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestFindOrCreateFromGoogle_ProvisionsInactiveProfile() {
	ctx := context.Background()
	providerID := "google-sub-789"
	info := domain.GoogleUserInfo{ProviderUserID: providerID, Email: "New.Person@Example.com", Name: "New Person", EmailVerified: true}

	suite.mockProfileRepo.On("FindProfileByProviderID", ctx, domain.ProviderGoogle, providerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("FindProfileByEmail", ctx, info.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProfileRepo.On("SaveProfile", ctx, mock.MatchedBy(func(p domain.Profile) bool {
		return p.Email == "new.person@example.com" && p.RoleType == domain.RoleBD &&
			!p.IsActive && p.AuthProvider == domain.ProviderGoogle &&
			p.ProviderUserID != nil && *p.ProviderUserID == providerID
	})).Return(nil).Once()

	got, err := suite.service.FindOrCreateFromGoogle(ctx, info)

	suite.Require().NoError(err)
	suite.False(got.IsActive, "provisioned profiles wait for admin activation")
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestFindOrCreateFromGoogle_UnverifiedEmailRejected() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ProviderUserID: "sub", Email: "x@y.z", EmailVerified: false}

	got, err := suite.service.FindOrCreateFromGoogle(ctx, info)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
	suite.mockProfileRepo.AssertNotCalled(suite.T(), "FindProfileByProviderID", mock.Anything, mock.Anything, mock.Anything)
}

// --- Read path tests ---

func (suite *ProfileServiceTestSuite) TestListProfiles() {
	ctx := context.Background()
	profiles := []domain.Profile{{ProfileID: uuid.NewString(), Name: "A"}}
	suite.mockProfileRepo.On("FindProfiles", ctx, 50, 0).Return(profiles, nil).Once()

	got, err := suite.service.ListProfiles(ctx, 50, 0)

	suite.Require().NoError(err)
	suite.Equal(profiles, got)
}

func (suite *ProfileServiceTestSuite) TestGetProfileByID_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockProfileRepo.On("FindProfileByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetProfileByID(ctx, id)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
