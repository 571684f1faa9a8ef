package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// targetService implements the TargetSvcFacade.
type targetService struct {
	BaseService
	targetRepo  portsrepo.TargetRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewTargetService creates a new target service.
func NewTargetService(targetRepo portsrepo.TargetRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade) portssvc.TargetSvcFacade {
	return &targetService{
		targetRepo:  targetRepo,
		profileRepo: profileRepo,
	}
}

var _ portssvc.TargetSvcFacade = (*targetService)(nil)

// requirePrivileged checks the requesting user holds a role allowed to set
// targets.
func (s *targetService) requirePrivileged(ctx context.Context, requestingUserID string) error {
	requester, err := s.profileRepo.FindProfileByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to load requesting profile: %w", err)
	}
	if !requester.RoleType.IsPrivileged() {
		return fmt.Errorf("role %s may not set targets: %w", requester.RoleType, apperrors.ErrForbidden)
	}
	return nil
}

func (s *targetService) SetCompanyTarget(ctx context.Context, req dto.SetCompanyTargetRequest, setterID string) (*domain.BillingTarget, error) {
	if err := s.requirePrivileged(ctx, setterID); err != nil {
		return nil, err
	}
	if req.TargetGP.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: target GP cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	target := domain.BillingTarget{
		TargetID: uuid.NewString(),
		Year:     req.Year,
		TargetGP: req.TargetGP,
		SetBy:    setterID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     setterID,
			LastUpdatedAt: now,
			LastUpdatedBy: setterID,
		},
	}

	if err := s.targetRepo.UpsertCompanyTarget(ctx, target); err != nil {
		s.LogError(ctx, err, "Failed to upsert company target", slog.Int("year", req.Year))
		return nil, err
	}

	s.LogInfo(ctx, "Company target set", slog.Int("year", req.Year), slog.String("target_gp", req.TargetGP.String()))
	return &target, nil
}

func (s *targetService) GetCompanyTarget(ctx context.Context, year int) (*domain.BillingTarget, error) {
	return s.targetRepo.FindCompanyTargetByYear(ctx, year)
}

func (s *targetService) SetIndividualTargets(ctx context.Context, userID string, req dto.SetIndividualTargetsRequest, setterID string) ([]domain.IndividualTarget, error) {
	if err := s.requirePrivileged(ctx, setterID); err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.FindProfileByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile %s not found", apperrors.ErrValidation, userID)
		}
		return nil, fmt.Errorf("failed to validate target profile: %w", err)
	}

	seen := map[int]bool{}
	now := time.Now()
	targets := make([]domain.IndividualTarget, 0, len(req.Months))
	for _, entry := range req.Months {
		if seen[entry.Month] {
			return nil, fmt.Errorf("%w: month %d appears more than once", apperrors.ErrValidation, entry.Month)
		}
		seen[entry.Month] = true
		if entry.TargetGP.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: target GP cannot be negative", apperrors.ErrValidation)
		}

		targets = append(targets, domain.IndividualTarget{
			TargetID: uuid.NewString(),
			UserID:   userID,
			Year:     req.Year,
			Month:    entry.Month,
			TargetGP: entry.TargetGP,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     setterID,
				LastUpdatedAt: now,
				LastUpdatedBy: setterID,
			},
		})
	}

	if err := s.targetRepo.UpsertIndividualTargets(ctx, targets); err != nil {
		s.LogError(ctx, err, "Failed to upsert individual targets",
			slog.String("user_id", userID), slog.Int("year", req.Year))
		return nil, err
	}

	s.LogInfo(ctx, "Individual targets set",
		slog.String("user_id", userID), slog.Int("year", req.Year), slog.Int("months", len(targets)))
	return targets, nil
}

func (s *targetService) GetIndividualTargets(ctx context.Context, userID string, year int) ([]domain.IndividualTarget, error) {
	return s.targetRepo.FindIndividualTargets(ctx, userID, year)
}
