package usecase

import (
	"context"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// ProductUseCase casos de uso de produtos. Estoque e custo médio mudam só por movimentações.
type ProductUseCase struct {
	repo repository.ProductRepository
	out  reporter
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, rep Reporting) *ProductUseCase {
	return &ProductUseCase{repo: repo, out: newReporter(rep)}
}

// Create cadastra um produto na unidade do usuário.
func (uc *ProductUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.ProductResponse, error) {
	ev := event{entity: "product", action: "create", message: "Produto cadastrado com sucesso."}
	p, err := uc.create(ctx, a, raw)
	if p != nil {
		ev.entityID, ev.after = p.ID, p
	}
	uc.out.done(ctx, a, ev, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.ProductResponse, error) {
	if err := a.authorize(domain.PermProductWrite); err != nil {
		return nil, err
	}
	in, err := dto.NewCreateProductDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	p, err := uc.repo.Create(ctx, in.ToObject())
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID devolve um produto da unidade.
func (uc *ProductUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.ProductResponse, error) {
	if err := a.authorize(domain.PermProductRead); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update altera só os campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ProductResponse, error) {
	ev := event{entity: "product", action: "update", entityID: id, message: "Produto atualizado com sucesso."}
	before, after, err := uc.update(ctx, a, id, raw)
	ev.before, ev.after = before, after
	uc.out.done(ctx, a, ev, err)
	if err != nil {
		return nil, err
	}
	return after, nil
}

func (uc *ProductUseCase) update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.ProductResponse, *dto.ProductResponse, error) {
	if err := a.authorize(domain.PermProductWrite); err != nil {
		return nil, nil, err
	}
	in, err := dto.NewUpdateProductDTO(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, nil, err
	}
	current, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, nil, err
	}
	p, err := uc.repo.Update(ctx, a.UnitID, id, in.ToObject())
	if err != nil {
		return toProductResponse(current), nil, err
	}
	return toProductResponse(current), toProductResponse(p), nil
}

// Delete inativa o produto (exclusão lógica).
func (uc *ProductUseCase) Delete(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermProductWrite)
	if err == nil {
		err = uc.repo.SoftDelete(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "product", action: "delete", entityID: id, message: "Produto excluído."}, err)
	return err
}

// List lista produtos com filtros e paginação.
func (uc *ProductUseCase) List(ctx context.Context, a Actor, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	if err := a.authorize(domain.PermProductRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.ProductFilter{
		Search:     f.Search,
		Category:   f.Category,
		OnlyActive: f.OnlyActive,
		LowStock:   f.LowStock,
		Limit:      pg.Limit,
		Offset:     pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total},
	}, nil
}

// Stats indicadores de estoque e sugestão de reposição dos produtos abaixo do mínimo.
func (uc *ProductUseCase) Stats(ctx context.Context, a Actor) (*dto.ProductStatsResponse, error) {
	if err := a.authorize(domain.PermProductRead); err != nil {
		return nil, err
	}
	st, err := uc.repo.Stats(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	low, err := uc.repo.ListLowStock(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	restock := make([]dto.RestockSuggestion, 0, len(low))
	for _, p := range low {
		qty := p.SuggestedRestock()
		restock = append(restock, dto.RestockSuggestion{
			ProductID:     p.ID,
			Name:          p.Name,
			CurrentStock:  p.CurrentStock,
			MinStock:      p.MinStock,
			SuggestedQty:  qty,
			EstimatedCost: qty.Mul(p.CostPrice).Round(2),
		})
	}
	return &dto.ProductStatsResponse{
		TotalProducts:  st.TotalProducts,
		ActiveProducts: st.ActiveProducts,
		LowStockCount:  st.LowStockCount,
		StockValue:     st.StockValue.Round(2),
		StockValueBRL:  format.BRL(st.StockValue),
		Restock:        restock,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		UnitID:       p.UnitID,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Category:     p.Category,
		Brand:        p.Brand,
		UnitMeasure:  p.UnitMeasure,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		SupplierID:   p.SupplierID,
		IsActive:     p.IsActive,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
