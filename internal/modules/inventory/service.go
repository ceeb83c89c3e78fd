package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

type Service struct {
	materials    MaterialRepository
	equipment    EquipmentRepository
	requisitions RequisitionRepository
	notifier     Notifier
	audit        Auditor
	log          *zap.Logger
}

func NewService(
	materials MaterialRepository,
	equipment EquipmentRepository,
	requisitions RequisitionRepository,
	notifier Notifier,
	audit Auditor,
	log *zap.Logger,
) *Service {
	return &Service{
		materials:    materials,
		equipment:    equipment,
		requisitions: requisitions,
		notifier:     notifier,
		audit:        audit,
		log:          log,
	}
}

func (s *Service) CreateMaterial(ctx context.Context, req CreateItemRequest) (*domain.Material, error) {
	m := &domain.Material{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.materials.List(ctx)
}

func (s *Service) UpdateMaterial(ctx context.Context, id int64, req UpdateItemRequest) (*domain.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	applyItemUpdate(&m.Name, &m.Quantity, &m.Unit, &m.UnitPrice, req)
	if err := s.materials.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteMaterial(ctx context.Context, id int64) error {
	if _, err := s.materials.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.materials.Delete(ctx, id)
}

func (s *Service) CreateEquipment(ctx context.Context, req CreateItemRequest) (*domain.Equipment, error) {
	e := &domain.Equipment{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
	}
	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment.List(ctx)
}

func (s *Service) UpdateEquipment(ctx context.Context, id int64, req UpdateItemRequest) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	applyItemUpdate(&e.Name, &e.Quantity, &e.Unit, &e.UnitPrice, req)
	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) DeleteEquipment(ctx context.Context, id int64) error {
	if _, err := s.equipment.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.equipment.Delete(ctx, id)
}

func applyItemUpdate(name *string, qty *int, unit *string, price *float64, req UpdateItemRequest) {
	if req.Name != "" {
		*name = req.Name
	}
	if req.Quantity != nil {
		*qty = *req.Quantity
	}
	if req.Unit != "" {
		*unit = req.Unit
	}
	if req.UnitPrice != nil {
		*price = *req.UnitPrice
	}
}

// Submit records a pending requisition. Stock is untouched until an
// admin approves it.
func (s *Service) Submit(ctx context.Context, req SubmitRequisitionRequest, requestedBy string) (*domain.Requisition, error) {
	kind := domain.RequisitionKind(req.Kind)

	var itemName string
	switch kind {
	case domain.RequisitionMaterial:
		m, err := s.materials.GetByID(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		itemName = m.Name
	case domain.RequisitionEquipment:
		e, err := s.equipment.GetByID(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		itemName = e.Name
	}

	r := &domain.Requisition{
		ProjectID:   req.ProjectID,
		Kind:        kind,
		ItemID:      req.ItemID,
		ItemName:    itemName,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Status:      domain.RequisitionPending,
		RequestedBy: requestedBy,
	}
	if err := s.requisitions.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, req.ProjectID, domain.NotifRequisition,
		"Requisition Submitted",
		fmt.Sprintf("%s requested %d x %s", requestedBy, req.Quantity, itemName), nil); err != nil {
		s.log.Warn("requisition notification failed", zap.Error(err))
	}
	return r, nil
}

func (s *Service) ListRequisitions(ctx context.Context, status string) ([]domain.Requisition, error) {
	return s.requisitions.List(ctx, domain.RequisitionStatus(status))
}

// Approve decrements stock and marks the requisition approved. A
// shortage leaves both the stock row and the requisition untouched.
func (s *Service) Approve(ctx context.Context, id int64, decidedBy, ip string) (*domain.Requisition, error) {
	r, err := s.requisitions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.Status != domain.RequisitionPending {
		return nil, ErrAlreadyDecided
	}

	switch r.Kind {
	case domain.RequisitionMaterial:
		err = s.materials.AdjustStock(ctx, r.ItemID, -r.Quantity)
	case domain.RequisitionEquipment:
		err = s.equipment.AdjustStock(ctx, r.ItemID, -r.Quantity)
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, err
	}

	if err := s.requisitions.Decide(ctx, id, domain.RequisitionApproved, decidedBy); err != nil {
		return nil, err
	}

	s.audit.LogUserAction(ctx, decidedBy, "approve_requisition", "requisition", id,
		fmt.Sprintf("item=%s qty=%d", r.ItemName, r.Quantity), ip)
	if err := s.notifier.Notify(ctx, r.ProjectID, domain.NotifRequisition,
		"Requisition Approved",
		fmt.Sprintf("%d x %s released for the project", r.Quantity, r.ItemName), nil); err != nil {
		s.log.Warn("requisition notification failed", zap.Error(err))
	}
	return s.requisitions.GetByID(ctx, id)
}

func (s *Service) Decline(ctx context.Context, id int64, decidedBy, ip string) (*domain.Requisition, error) {
	r, err := s.requisitions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.Status != domain.RequisitionPending {
		return nil, ErrAlreadyDecided
	}

	if err := s.requisitions.Decide(ctx, id, domain.RequisitionDeclined, decidedBy); err != nil {
		return nil, err
	}

	s.audit.LogUserAction(ctx, decidedBy, "decline_requisition", "requisition", id, "", ip)
	if err := s.notifier.Notify(ctx, r.ProjectID, domain.NotifRequisition,
		"Requisition Declined",
		fmt.Sprintf("Request for %d x %s was declined", r.Quantity, r.ItemName), nil); err != nil {
		s.log.Warn("requisition notification failed", zap.Error(err))
	}
	return s.requisitions.GetByID(ctx, id)
}
