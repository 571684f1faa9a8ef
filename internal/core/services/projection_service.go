package services

import (
	"context"
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

// projectionService implements the ProjectionSvcFacade.
type projectionService struct {
	BaseService
	projectionRepo portsrepo.ProjectionRepositoryFacade
	dealRepo       portsrepo.DealRepositoryFacade
	reportingRepo  portsrepo.ReportingRepositoryFacade
}

// NewProjectionService creates a new projection service.
func NewProjectionService(
	projectionRepo portsrepo.ProjectionRepositoryFacade,
	dealRepo portsrepo.DealRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
) portssvc.ProjectionSvcFacade {
	return &projectionService{
		projectionRepo: projectionRepo,
		dealRepo:       dealRepo,
		reportingRepo:  reportingRepo,
	}
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

// GetProjectionSummary splits approved-deal value by deal type for a year.
// Service and Contract deals honour stored per-year adjustments; Staff deals
// always contribute their converted value. Billed GP comes from billing records.
func (s *projectionService) GetProjectionSummary(ctx context.Context, year int) (*domain.ProjectionSummary, error) {
	deals, err := s.dealRepo.FindApprovedDealsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved deals for %d: %w", year, err)
	}

	adjustments, err := s.projectionRepo.FindAdjustmentsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load projection adjustments for %d: %w", year, err)
	}
	adjustedValue := map[string]*decimal.Decimal{}
	for i := range adjustments {
		if adjustments[i].ValueThisYearGBP != nil {
			adjustedValue[adjustments[i].DealID] = adjustments[i].ValueThisYearGBP
		}
	}

	summary := domain.ProjectionSummary{
		Year:        year,
		ServicesGBP: decimal.Zero,
		StaffGBP:    decimal.Zero,
		ContractGBP: decimal.Zero,
		BillingsGBP: decimal.Zero,
		TotalGBP:    decimal.Zero,
	}

	for _, deal := range deals {
		value := deal.ValueGBP
		switch deal.DealType {
		case domain.DealTypeService:
			if adj, ok := adjustedValue[deal.DealID]; ok {
				value = *adj
			}
			summary.ServicesGBP = summary.ServicesGBP.Add(value)
		case domain.DealTypeContract:
			if adj, ok := adjustedValue[deal.DealID]; ok {
				value = *adj
			}
			summary.ContractGBP = summary.ContractGBP.Add(value)
		case domain.DealTypeStaff:
			summary.StaffGBP = summary.StaffGBP.Add(value)
		}
	}

	billings, err := s.reportingRepo.GetBillingGPTotal(ctx, year)
	if err != nil {
		return nil, err
	}
	summary.BillingsGBP = billings

	summary.TotalGBP = summary.ServicesGBP.
		Add(summary.StaffGBP).
		Add(summary.ContractGBP).
		Add(summary.BillingsGBP)

	return &summary, nil
}

func (s *projectionService) UpsertAdjustment(ctx context.Context, dealID string, req dto.UpsertProjectionAdjustmentRequest, requestingUserID string) (*domain.ProjectionAdjustment, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if req.MobilisationDate != nil && deal.DealType != domain.DealTypeContract {
		return nil, fmt.Errorf("%w: mobilisation date only applies to Contract deals", apperrors.ErrValidation)
	}
	if req.ValueThisYearGBP != nil && req.ValueThisYearGBP.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: adjusted value cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	adjustment := domain.ProjectionAdjustment{
		AdjustmentID:     uuid.NewString(),
		DealID:           dealID,
		Year:             req.Year,
		ValueThisYearGBP: req.ValueThisYearGBP,
		MobilisationDate: req.MobilisationDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.projectionRepo.UpsertAdjustment(ctx, adjustment); err != nil {
		s.LogError(ctx, err, "Failed to upsert projection adjustment", slog.String("deal_id", dealID))
		return nil, err
	}

	s.LogInfo(ctx, "Projection adjustment saved", slog.String("deal_id", dealID), slog.Int("year", req.Year))
	return &adjustment, nil
}
