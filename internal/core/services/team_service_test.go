package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/core/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

type TeamServiceTestSuite struct {
	suite.Suite
	mockTeamRepo    *MockTeamRepository
	mockProfileRepo *MockProfileRepository
	service         portssvc.TeamSvcFacade

	creatorID string
	creator   domain.Profile
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.service = services.NewTeamService(suite.mockTeamRepo, suite.mockProfileRepo)
	suite.creatorID = uuid.NewString()
	suite.creator = domain.Profile{ProfileID: suite.creatorID, RoleType: domain.RoleAdmin, IsActive: true}
}

// expectPrivilegedCreator resolves the requesting user as an admin profile.
func (suite *TeamServiceTestSuite) expectPrivilegedCreator() {
	suite.mockProfileRepo.On("FindProfileByID", mock.Anything, suite.creatorID).
		Return(&suite.creator, nil).Once()
}

func (suite *TeamServiceTestSuite) TestCreateTeam_Success() {
	ctx := context.Background()
	desc := "Contract desk covering the Gulf region"
	req := dto.CreateTeamRequest{Name: "Gulf Desk", Description: &desc}

	suite.expectPrivilegedCreator()
	suite.mockTeamRepo.On("SaveTeam", ctx, mock.MatchedBy(func(t domain.Team) bool {
		return t.Name == "Gulf Desk" && t.IsActive && t.CreatedBy == suite.creatorID
	})).Return(nil).Once()

	team, err := suite.service.CreateTeam(ctx, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(team.TeamID)
	suite.Equal("Gulf Desk", team.Name)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestUpdateTeam_PartialUpdate() {
	ctx := context.Background()
	teamID := uuid.NewString()
	existing := &domain.Team{TeamID: teamID, Name: "Old Name", IsActive: true}
	inactive := false
	req := dto.UpdateTeamRequest{IsActive: &inactive}

	suite.expectPrivilegedCreator()
	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).Return(existing, nil).Once()
	suite.mockTeamRepo.On("UpdateTeam", ctx, mock.MatchedBy(func(t domain.Team) bool {
		return t.TeamID == teamID && t.Name == "Old Name" && !t.IsActive &&
			t.LastUpdatedBy == suite.creatorID
	})).Return(nil).Once()

	team, err := suite.service.UpdateTeam(ctx, teamID, req, suite.creatorID)

	suite.Require().NoError(err)
	suite.False(team.IsActive)
	suite.Equal("Old Name", team.Name)
}

func (suite *TeamServiceTestSuite) TestUpdateTeam_NotFound() {
	ctx := context.Background()
	teamID := uuid.NewString()
	suite.expectPrivilegedCreator()
	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).Return(nil, apperrors.ErrNotFound).Once()

	team, err := suite.service.UpdateTeam(ctx, teamID, dto.UpdateTeamRequest{}, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(team)
}

func (suite *TeamServiceTestSuite) TestCreateTeam_ForbiddenForNonPrivileged() {
	ctx := context.Background()
	bd := &domain.Profile{ProfileID: suite.creatorID, RoleType: domain.RoleBD, IsActive: true}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.creatorID).Return(bd, nil).Once()

	team, err := suite.service.CreateTeam(ctx, dto.CreateTeamRequest{Name: "Rogue Desk"}, suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(team)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "SaveTeam", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestDeactivateTeam_MarksInactive() {
	ctx := context.Background()
	teamID := uuid.NewString()
	existing := &domain.Team{TeamID: teamID, Name: "Gulf Desk", IsActive: true}

	suite.expectPrivilegedCreator()
	suite.mockTeamRepo.On("FindTeamByID", ctx, teamID).Return(existing, nil).Once()
	suite.mockTeamRepo.On("UpdateTeam", ctx, mock.MatchedBy(func(t domain.Team) bool {
		return t.TeamID == teamID && !t.IsActive && t.LastUpdatedBy == suite.creatorID
	})).Return(nil).Once()

	err := suite.service.DeactivateTeam(ctx, teamID, suite.creatorID)

	suite.Require().NoError(err)
	suite.mockTeamRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestDeactivateTeam_ForbiddenForNonPrivileged() {
	ctx := context.Background()
	bd := &domain.Profile{ProfileID: suite.creatorID, RoleType: domain.RoleBD, IsActive: true}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.creatorID).Return(bd, nil).Once()

	err := suite.service.DeactivateTeam(ctx, uuid.NewString(), suite.creatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "UpdateTeam", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestListTeams() {
	ctx := context.Background()
	teams := []domain.Team{{TeamID: uuid.NewString(), Name: "London Desk", IsActive: true}}
	suite.mockTeamRepo.On("FindTeams", ctx).Return(teams, nil).Once()

	got, err := suite.service.ListTeams(ctx)

	suite.Require().NoError(err)
	suite.Equal(teams, got)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
