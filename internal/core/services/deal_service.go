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
)

// dealService implements the DealSvcFacade.
type dealService struct {
	BaseService
	dealRepo    portsrepo.DealRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	rates       portssvc.RateProvider
}

// NewDealService creates a new deal service.
func NewDealService(dealRepo portsrepo.DealRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade, rates portssvc.RateProvider) portssvc.DealSvcFacade {
	return &dealService{
		dealRepo:    dealRepo,
		profileRepo: profileRepo,
		rates:       rates,
	}
}

var _ portssvc.DealSvcFacade = (*dealService)(nil)

// requireReviewer checks the requesting user may act on other users' deals.
func (s *dealService) requireReviewer(ctx context.Context, userID string) error {
	reviewer, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to load reviewing profile: %w", err)
	}
	if !reviewer.RoleType.IsPrivileged() {
		return fmt.Errorf("role %s may not review deals: %w", reviewer.RoleType, apperrors.ErrForbidden)
	}
	return nil
}

func (s *dealService) CreateDeal(ctx context.Context, req dto.CreateDealRequest, submitterID string) (*domain.Deal, error) {
	valueGBP, err := s.rates.ConvertToGBP(ctx, req.Value, req.Currency)
	if err != nil {
		s.LogError(ctx, err, "Currency conversion failed on deal submission", slog.String("currency", req.Currency))
		return nil, fmt.Errorf("failed to convert deal value to GBP: %w", err)
	}

	status := domain.StatusSubmitted
	if req.SaveAsDraft {
		status = domain.StatusDraft
	}

	now := time.Now()
	deal := domain.Deal{
		DealID:                  uuid.NewString(),
		DealType:                domain.DealType(req.DealType),
		Client:                  req.Client,
		Location:                req.Location,
		Currency:                domain.CurrencyCode(req.Currency),
		ValueOriginal:           req.Value,
		ValueGBP:                valueGBP,
		Status:                  status,
		SubmittedBy:             submitterID,
		SubmittedMonth:          req.SubmittedMonth,
		SubmittedYear:           req.SubmittedYear,
		BDUserID:                req.BDUserID,
		BDPercent:               req.BDPercent,
		DTUserID:                req.DTUserID,
		DTPercent:               req.DTPercent,
		User360ID:               req.User360ID,
		Percent360:              req.Percent360,
		IsRenewal:               req.IsRenewal,
		RenewalCount:            req.RenewalCount,
		PlacementID:             req.PlacementID,
		WorkerName:              req.WorkerName,
		GPDaily:                 req.GPDaily,
		DurationDays:            req.DurationDays,
		ServiceName:             req.ServiceName,
		ServiceDescription:      req.ServiceDescription,
		ReasonForBackdate:       req.ReasonForBackdate,
		EstimatedDays:           req.EstimatedDays,
		EstimatedOpportunityGBP: req.EstimatedOpportunityGBP,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterID,
		},
	}

	if err := s.dealRepo.SaveDeal(ctx, deal); err != nil {
		s.LogError(ctx, err, "Failed to save deal", slog.String("client", req.Client))
		return nil, err
	}

	s.LogInfo(ctx, "Deal created",
		slog.String("deal_id", deal.DealID),
		slog.String("status", string(deal.Status)),
		slog.String("value_gbp", deal.ValueGBP.String()))
	return &deal, nil
}

func (s *dealService) UpdateDeal(ctx context.Context, dealID string, req dto.UpdateDealRequest, requestingUserID string) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.SubmittedBy != requestingUserID {
		return nil, fmt.Errorf("only the submitter may edit a deal: %w", apperrors.ErrForbidden)
	}
	if deal.Status != domain.StatusDraft && deal.Status != domain.StatusRevisionRequired {
		return nil, fmt.Errorf("%w: deal in status %s cannot be edited", apperrors.ErrValidation, deal.Status)
	}

	valueChanged := false
	if req.Client != nil {
		deal.Client = *req.Client
	}
	if req.Location != nil {
		deal.Location = *req.Location
	}
	if req.Currency != nil {
		deal.Currency = domain.CurrencyCode(strings.ToUpper(*req.Currency))
		valueChanged = true
	}
	if req.Value != nil {
		deal.ValueOriginal = *req.Value
		valueChanged = true
	}
	if req.SubmittedMonth != nil {
		deal.SubmittedMonth = *req.SubmittedMonth
	}
	if req.SubmittedYear != nil {
		deal.SubmittedYear = *req.SubmittedYear
	}
	if req.BDUserID != nil {
		deal.BDUserID = req.BDUserID
	}
	if req.BDPercent != nil {
		deal.BDPercent = req.BDPercent
	}
	if req.DTUserID != nil {
		deal.DTUserID = req.DTUserID
	}
	if req.DTPercent != nil {
		deal.DTPercent = req.DTPercent
	}
	if req.User360ID != nil {
		deal.User360ID = req.User360ID
	}
	if req.Percent360 != nil {
		deal.Percent360 = req.Percent360
	}
	if req.IsRenewal != nil {
		deal.IsRenewal = *req.IsRenewal
	}
	if req.RenewalCount != nil {
		deal.RenewalCount = *req.RenewalCount
	}
	if req.PlacementID != nil {
		deal.PlacementID = req.PlacementID
	}
	if req.WorkerName != nil {
		deal.WorkerName = req.WorkerName
	}
	if req.GPDaily != nil {
		deal.GPDaily = req.GPDaily
	}
	if req.DurationDays != nil {
		deal.DurationDays = req.DurationDays
	}
	if req.ServiceName != nil {
		deal.ServiceName = req.ServiceName
	}
	if req.ServiceDescription != nil {
		deal.ServiceDescription = req.ServiceDescription
	}
	if req.EstimatedDays != nil {
		deal.EstimatedDays = req.EstimatedDays
	}
	if req.EstimatedOpportunityGBP != nil {
		deal.EstimatedOpportunityGBP = req.EstimatedOpportunityGBP
	}

	if valueChanged {
		valueGBP, err := s.rates.ConvertToGBP(ctx, deal.ValueOriginal, string(deal.Currency))
		if err != nil {
			return nil, fmt.Errorf("failed to convert deal value to GBP: %w", err)
		}
		deal.ValueGBP = valueGBP
	}

	deal.LastUpdatedAt = time.Now()
	deal.LastUpdatedBy = requestingUserID

	if err := s.dealRepo.UpdateDeal(ctx, *deal); err != nil {
		s.LogError(ctx, err, "Failed to update deal", slog.String("deal_id", dealID))
		return nil, err
	}

	return deal, nil
}

func (s *dealService) DeleteDraft(ctx context.Context, dealID string, requestingUserID string) error {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return err
	}
	if deal.SubmittedBy != requestingUserID {
		return fmt.Errorf("only the submitter may delete a draft: %w", apperrors.ErrForbidden)
	}
	if deal.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only drafts can be deleted", apperrors.ErrValidation)
	}

	if err := s.dealRepo.DeleteDeal(ctx, dealID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft", slog.String("deal_id", dealID))
		return err
	}

	s.LogInfo(ctx, "Draft deleted", slog.String("deal_id", dealID))
	return nil
}

func (s *dealService) GetDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	return s.dealRepo.FindDealByID(ctx, dealID)
}

func (s *dealService) ListDeals(ctx context.Context, filter portsrepo.DealListFilter) ([]domain.Deal, error) {
	return s.dealRepo.FindDeals(ctx, filter)
}

// transition moves a deal to the target status after checking the workflow
// matrix, then applies mutate and persists.
func (s *dealService) transition(ctx context.Context, dealID string, target domain.DealStatus, actorID string, mutate func(*domain.Deal)) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move deal from %s to %s", apperrors.ErrValidation, deal.Status, target)
	}

	deal.Status = target
	if mutate != nil {
		mutate(deal)
	}
	deal.LastUpdatedAt = time.Now()
	deal.LastUpdatedBy = actorID

	if err := s.dealRepo.UpdateDeal(ctx, *deal); err != nil {
		s.LogError(ctx, err, "Failed to persist deal transition",
			slog.String("deal_id", dealID), slog.String("target", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Deal status changed",
		slog.String("deal_id", dealID), slog.String("status", string(target)))
	return deal, nil
}

func (s *dealService) SubmitDeal(ctx context.Context, dealID string, requestingUserID string) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.SubmittedBy != requestingUserID {
		return nil, fmt.Errorf("only the submitter may submit a deal: %w", apperrors.ErrForbidden)
	}
	return s.transition(ctx, dealID, domain.StatusSubmitted, requestingUserID, func(d *domain.Deal) {
		d.RevisionComment = nil
	})
}

func (s *dealService) StartReview(ctx context.Context, dealID string, reviewerID string) (*domain.Deal, error) {
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return nil, err
	}
	return s.transition(ctx, dealID, domain.StatusUnderReview, reviewerID, nil)
}

func (s *dealService) ApproveDeal(ctx context.Context, dealID string, approverID string) (*domain.Deal, error) {
	if err := s.requireReviewer(ctx, approverID); err != nil {
		return nil, err
	}
	return s.transition(ctx, dealID, domain.StatusApproved, approverID, func(d *domain.Deal) {
		d.ApprovedBy = &approverID
	})
}

func (s *dealService) RejectDeal(ctx context.Context, dealID string, reviewerID string, comment string) (*domain.Deal, error) {
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return nil, err
	}
	return s.transition(ctx, dealID, domain.StatusRejected, reviewerID, func(d *domain.Deal) {
		if comment != "" {
			d.RevisionComment = &comment
		}
	})
}

func (s *dealService) RequestRevision(ctx context.Context, dealID string, reviewerID string, comment string) (*domain.Deal, error) {
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: a revision comment is required", apperrors.ErrValidation)
	}
	return s.transition(ctx, dealID, domain.StatusRevisionRequired, reviewerID, func(d *domain.Deal) {
		d.RevisionComment = &comment
	})
}

func (s *dealService) VoidDeal(ctx context.Context, dealID string, voidedBy string, reason string) (*domain.Deal, error) {
	if err := s.requireReviewer(ctx, voidedBy); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a void reason is required", apperrors.ErrValidation)
	}
	return s.transition(ctx, dealID, domain.StatusVoided, voidedBy, func(d *domain.Deal) {
		d.VoidReason = &reason
		d.VoidedBy = &voidedBy
	})
}
