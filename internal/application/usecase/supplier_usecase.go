package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// MaxSupplierFileSize limite de upload de arquivos de fornecedor (10 MB).
const MaxSupplierFileSize = 10 << 20

var supplierFileTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"text/xml":        true,
	"application/xml": true,
}

// SupplierUseCase fornecedores, contatos e arquivos.
type SupplierUseCase struct {
	repo           repository.SupplierRepository
	tx             repository.TxRunner
	storage        ports.ObjectStorage // nil = uploads desabilitados
	presignExpires time.Duration
	out            reporter
}

// NewSupplierUseCase constrói o caso de uso. storage pode ser nil.
func NewSupplierUseCase(repo repository.SupplierRepository, tx repository.TxRunner, storage ports.ObjectStorage, presignExpires time.Duration, rep Reporting) *SupplierUseCase {
	if presignExpires <= 0 {
		presignExpires = 15 * time.Minute
	}
	return &SupplierUseCase{repo: repo, tx: tx, storage: storage, presignExpires: presignExpires, out: newReporter(rep)}
}

// Create cadastra o fornecedor e seus contatos na mesma transação.
func (uc *SupplierUseCase) Create(ctx context.Context, a Actor, raw map[string]any) (*dto.SupplierResponse, error) {
	var res *dto.SupplierResponse
	err := a.authorize(domain.PermSupplierWrite)
	if err == nil {
		res, err = uc.create(ctx, a, raw)
	}
	ev := event{entity: "supplier", action: "create", message: "Fornecedor cadastrado com sucesso."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *SupplierUseCase) create(ctx context.Context, a Actor, raw map[string]any) (*dto.SupplierResponse, error) {
	in, err := dto.NewCreateSupplierDTO(a.scoped(raw, ""))
	if err != nil {
		return nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, err
	}
	var sp *entity.Supplier
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		created, err := r.Suppliers.Create(ctx, in.ToObject())
		if err != nil {
			return err
		}
		contacts, err := r.Suppliers.ReplaceContacts(ctx, created.ID, in.ContactObjects())
		if err != nil {
			return err
		}
		created.Contacts = contacts
		sp = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sp), nil
}

// Update altera os campos enviados; contacts, quando presente, substitui a lista.
func (uc *SupplierUseCase) Update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.SupplierResponse, error) {
	var before, after *dto.SupplierResponse
	err := a.authorize(domain.PermSupplierWrite)
	if err == nil {
		before, after, err = uc.update(ctx, a, id, raw)
	}
	uc.out.done(ctx, a, event{entity: "supplier", action: "update", entityID: id, message: "Fornecedor atualizado.", before: before, after: after}, err)
	if err != nil {
		return nil, err
	}
	return after, nil
}

func (uc *SupplierUseCase) update(ctx context.Context, a Actor, id string, raw map[string]any) (*dto.SupplierResponse, *dto.SupplierResponse, error) {
	in, err := dto.NewUpdateSupplierDTO(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := in.Validate().Err(); err != nil {
		return nil, nil, err
	}
	var before, after *entity.Supplier
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if before, err = r.Suppliers.FindByID(ctx, a.UnitID, id); err != nil {
			return err
		}
		if after, err = r.Suppliers.Update(ctx, a.UnitID, id, in.ToObject()); err != nil {
			return err
		}
		if contacts := in.ContactObjects(); contacts != nil {
			replaced, err := r.Suppliers.ReplaceContacts(ctx, id, contacts)
			if err != nil {
				return err
			}
			after.Contacts = replaced
		} else {
			after.Contacts = before.Contacts
		}
		return nil
	})
	if err != nil {
		return toSupplierResponse(before), nil, err
	}
	return toSupplierResponse(before), toSupplierResponse(after), nil
}

// Delete inativa o fornecedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermSupplierWrite)
	if err == nil {
		err = uc.repo.SoftDelete(ctx, a.UnitID, id)
	}
	uc.out.done(ctx, a, event{entity: "supplier", action: "delete", entityID: id, message: "Fornecedor inativado."}, err)
	return err
}

// GetByID fornecedor com contatos.
func (uc *SupplierUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.SupplierResponse, error) {
	if err := a.authorize(domain.PermSupplierRead); err != nil {
		return nil, err
	}
	sp, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sp), nil
}

// List fornecedores da unidade.
func (uc *SupplierUseCase) List(ctx context.Context, a Actor, f dto.SupplierFilter) (*dto.SupplierListResponse, error) {
	if err := a.authorize(domain.PermSupplierRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.SupplierFilter{Search: f.Search, Status: f.Status, Limit: pg.Limit, Offset: pg.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, sp := range list {
		items = append(items, *toSupplierResponse(sp))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}

// UploadFile envia o arquivo ao storage e grava os metadados. Se a gravação falhar o objeto é removido.
func (uc *SupplierUseCase) UploadFile(ctx context.Context, a Actor, supplierID, fileName, contentType string, size int64, body io.Reader) (*dto.SupplierFileResponse, error) {
	var res *dto.SupplierFileResponse
	err := a.authorize(domain.PermSupplierWrite)
	if err == nil {
		res, err = uc.upload(ctx, a, supplierID, fileName, contentType, size, body)
	}
	ev := event{entity: "supplier_file", action: "upload", message: "Arquivo anexado ao fornecedor."}
	if res != nil {
		ev.entityID, ev.after = res.ID, res
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *SupplierUseCase) upload(ctx context.Context, a Actor, supplierID, fileName, contentType string, size int64, body io.Reader) (*dto.SupplierFileResponse, error) {
	if uc.storage == nil {
		return nil, domain.Conflict("Armazenamento de arquivos não configurado.")
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch {
	case size <= 0:
		return nil, domain.Invalid("arquivo vazio")
	case size > MaxSupplierFileSize:
		return nil, domain.Invalid("arquivo maior que 10 MB")
	case !supplierFileTypes[contentType]:
		return nil, domain.Invalid("tipo de arquivo não permitido (use PDF, JPEG, PNG ou XML)")
	}
	if _, err := uc.repo.FindByID(ctx, a.UnitID, supplierID); err != nil {
		return nil, err
	}

	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	key := fmt.Sprintf("units/%s/suppliers/%s/%s-%s", a.UnitID, supplierID, uuid.NewString(), name)
	if err := uc.storage.Put(ctx, key, body, size, contentType); err != nil {
		return nil, domain.Wrap(domain.ErrNetwork, "upload %s: %w", key, err)
	}
	f := &entity.SupplierFile{
		UnitID:      a.UnitID,
		SupplierID:  supplierID,
		FileName:    name,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  a.UserID,
	}
	if err := uc.repo.AddFile(ctx, f); err != nil {
		if derr := uc.storage.Delete(context.WithoutCancel(ctx), key); derr != nil {
			uc.out.Log.Warn().Err(derr).Str("key", key).Msg("objeto órfão no storage")
		}
		return nil, err
	}
	return uc.toFileResponse(ctx, f), nil
}

// ListFiles arquivos do fornecedor com URLs temporárias de download.
func (uc *SupplierUseCase) ListFiles(ctx context.Context, a Actor, supplierID string) ([]dto.SupplierFileResponse, error) {
	if err := a.authorize(domain.PermSupplierRead); err != nil {
		return nil, err
	}
	files, err := uc.repo.ListFiles(ctx, a.UnitID, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, *uc.toFileResponse(ctx, f))
	}
	return out, nil
}

// DeleteFile remove metadados e objeto.
func (uc *SupplierUseCase) DeleteFile(ctx context.Context, a Actor, fileID string) error {
	err := a.authorize(domain.PermSupplierWrite)
	if err == nil {
		err = uc.deleteFile(ctx, a, fileID)
	}
	uc.out.done(ctx, a, event{entity: "supplier_file", action: "delete", entityID: fileID, message: "Arquivo removido."}, err)
	return err
}

func (uc *SupplierUseCase) deleteFile(ctx context.Context, a Actor, fileID string) error {
	f, err := uc.repo.FindFile(ctx, a.UnitID, fileID)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteFile(ctx, a.UnitID, fileID); err != nil {
		return err
	}
	if uc.storage != nil {
		if err := uc.storage.Delete(ctx, f.StorageKey); err != nil {
			uc.out.Log.Warn().Err(err).Str("key", f.StorageKey).Msg("falha ao remover objeto do storage")
		}
	}
	return nil
}

func (uc *SupplierUseCase) toFileResponse(ctx context.Context, f *entity.SupplierFile) *dto.SupplierFileResponse {
	res := &dto.SupplierFileResponse{
		ID:          f.ID,
		SupplierID:  f.SupplierID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		CreatedAt:   f.CreatedAt,
	}
	if uc.storage != nil {
		url, err := uc.storage.PresignGet(ctx, f.StorageKey, uc.presignExpires)
		if err != nil {
			uc.out.Log.Warn().Err(err).Str("key", f.StorageKey).Msg("falha ao assinar URL")
		}
		res.DownloadURL = url
	}
	return res
}

func toSupplierResponse(sp *entity.Supplier) *dto.SupplierResponse {
	if sp == nil {
		return nil
	}
	contacts := make([]dto.SupplierContactResponse, 0, len(sp.Contacts))
	for _, ct := range sp.Contacts {
		contacts = append(contacts, dto.SupplierContactResponse{
			ID:        ct.ID,
			Name:      ct.Name,
			Role:      ct.Role,
			Email:     ct.Email,
			Phone:     formatted(ct.Phone, format.Phone),
			IsPrimary: ct.IsPrimary,
		})
	}
	return &dto.SupplierResponse{
		ID:        sp.ID,
		UnitID:    sp.UnitID,
		Name:      sp.Name,
		TradeName: sp.TradeName,
		CNPJ:      formatted(sp.CNPJ, format.CNPJ),
		CPF:       formatted(sp.CPF, format.CPF),
		Email:     sp.Email,
		Phone:     formatted(sp.Phone, format.Phone),
		Address:   sp.Address,
		City:      sp.City,
		State:     sp.State,
		ZipCode:   sp.ZipCode,
		Notes:     sp.Notes,
		Status:    sp.Status,
		Contacts:  contacts,
		CreatedAt: sp.CreatedAt,
		UpdatedAt: sp.UpdatedAt,
	}
}

func formatted(s *string, fn func(string) string) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}
