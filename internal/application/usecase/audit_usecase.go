package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ ports.AuditLogger = (*AuditUseCase)(nil)

// AuditUseCase grava e consulta a trilha de auditoria.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase constrói o caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Record grava uma entrada; before/after viram JSON.
func (uc *AuditUseCase) Record(ctx context.Context, e ports.AuditEntry) error {
	before, err := toJSON(e.Before)
	if err != nil {
		return fmt.Errorf("audit: before: %w", err)
	}
	after, err := toJSON(e.After)
	if err != nil {
		return fmt.Errorf("audit: after: %w", err)
	}
	log := &entity.AuditLog{
		UnitID:  e.UnitID,
		UserID:  e.UserID,
		Entity:  e.Entity,
		Action:  e.Action,
		Success: e.Success,
		Before:  before,
		After:   after,
	}
	if e.EntityID != "" {
		log.EntityID = &e.EntityID
	}
	if e.ErrorKind != "" {
		log.ErrorKind = &e.ErrorKind
	}
	return uc.repo.Create(ctx, log)
}

func toJSON(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

// List consulta da trilha (somente admin).
func (uc *AuditUseCase) List(ctx context.Context, a Actor, f dto.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	if err := a.authorize(domain.PermAuditRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.AuditFilter{
		Entity: f.Entity,
		UserID: f.UserID,
		From:   f.From,
		To:     f.To,
		Limit:  pg.Limit,
		Offset: pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Action:    l.Action,
			Success:   l.Success,
			ErrorKind: l.ErrorKind,
			Before:    rawOrNil(l.Before),
			After:     rawOrNil(l.After),
			CreatedAt: l.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

func rawOrNil(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
