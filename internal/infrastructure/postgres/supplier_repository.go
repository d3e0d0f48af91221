package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const (
	supplierColumns = "id, unit_id, name, trade_name, cnpj, cpf, email, phone, address, city, state, zip_code, " +
		"notes, status, created_at, updated_at"
	contactColumns = "id, supplier_id, name, role, email, phone, is_primary, created_at"
	fileColumns    = "id, unit_id, supplier_id, file_name, storage_key, content_type, size_bytes, uploaded_by, created_at"
)

// SupplierRepo fornecedores, contatos e metadados de arquivos.
type SupplierRepo struct {
	base
}

// NewSupplierRepository constrói o adaptador de fornecedores.
func NewSupplierRepository(q Querier, timeout time.Duration) *SupplierRepo {
	return &SupplierRepo{base: newBase(q, timeout)}
}

func scanSupplier(s scanner) (*entity.Supplier, error) {
	var sp entity.Supplier
	err := s.Scan(
		&sp.ID, &sp.UnitID, &sp.Name, &sp.TradeName, &sp.CNPJ, &sp.CPF, &sp.Email, &sp.Phone, &sp.Address,
		&sp.City, &sp.State, &sp.ZipCode, &sp.Notes, &sp.Status, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sp.Contacts = []entity.SupplierContact{}
	return &sp, nil
}

func scanContact(s scanner) (entity.SupplierContact, error) {
	var c entity.SupplierContact
	err := s.Scan(&c.ID, &c.SupplierID, &c.Name, &c.Role, &c.Email, &c.Phone, &c.IsPrimary, &c.CreatedAt)
	return c, err
}

func scanFile(s scanner) (*entity.SupplierFile, error) {
	var f entity.SupplierFile
	err := s.Scan(&f.ID, &f.UnitID, &f.SupplierID, &f.FileName, &f.StorageKey, &f.ContentType, &f.SizeBytes, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *SupplierRepo) one(ctx context.Context, op string, qb squirrel.Sqlizer) (*entity.Supplier, error) {
	var sp *entity.Supplier
	err := r.queryRow(ctx, op, qb, func(s scanner) (err error) {
		sp, err = scanSupplier(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// Create insere o fornecedor (os contatos são gravados por ReplaceContacts na mesma transação).
func (r *SupplierRepo) Create(ctx context.Context, values map[string]any) (*entity.Supplier, error) {
	qb := psql.Insert("suppliers").SetMap(values).Suffix("RETURNING " + supplierColumns)
	return r.one(ctx, "insert supplier", qb)
}

// FindByID busca o fornecedor com os contatos.
func (r *SupplierRepo) FindByID(ctx context.Context, unitID, id string) (*entity.Supplier, error) {
	qb := psql.Select(supplierColumns).From("suppliers").Where(squirrel.Eq{"id": id, "unit_id": unitID})
	sp, err := r.one(ctx, "find supplier", qb)
	if err != nil {
		return nil, err
	}
	contacts, err := r.contacts(ctx, sp.ID)
	if err != nil {
		return nil, err
	}
	sp.Contacts = contacts
	return sp, nil
}

func (r *SupplierRepo) contacts(ctx context.Context, supplierID string) ([]entity.SupplierContact, error) {
	qb := psql.Select(contactColumns).From("supplier_contacts").
		Where(squirrel.Eq{"supplier_id": supplierID}).
		OrderBy("is_primary DESC", "name")
	list := make([]entity.SupplierContact, 0)
	err := r.queryRows(ctx, "list supplier contacts", qb, func(s scanner) error {
		c, err := scanContact(s)
		if err != nil {
			return err
		}
		list = append(list, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update altera apenas as colunas informadas.
func (r *SupplierRepo) Update(ctx context.Context, unitID, id string, values map[string]any) (*entity.Supplier, error) {
	if len(values) == 0 {
		return r.FindByID(ctx, unitID, id)
	}
	qb := psql.Update("suppliers").SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID}).
		Suffix("RETURNING " + supplierColumns)
	return r.one(ctx, "update supplier", qb)
}

// SoftDelete marca o fornecedor como INATIVO.
func (r *SupplierRepo) SoftDelete(ctx context.Context, unitID, id string) error {
	qb := psql.Update("suppliers").
		Set("status", entity.SupplierInativo).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "unit_id": unitID})
	return r.execOne(ctx, "delete supplier", qb)
}

func supplierWhere(qb squirrel.SelectBuilder, unitID string, f repository.SupplierFilter) squirrel.SelectBuilder {
	qb = qb.From("suppliers").Where(squirrel.Eq{"unit_id": unitID})
	if f.Search != "" {
		qb = qb.Where(ilike(f.Search, "name", "trade_name", "cnpj", "cpf"))
	}
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": f.Status})
	}
	return qb
}

// List fornecedores em ordem alfabética (sem contatos).
func (r *SupplierRepo) List(ctx context.Context, unitID string, f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	total, err := r.count(ctx, "count suppliers", supplierWhere(psql.Select("COUNT(*)"), unitID, f))
	if err != nil {
		return nil, 0, err
	}
	qb := page(supplierWhere(psql.Select(supplierColumns), unitID, f).OrderBy("name"), f.Limit, f.Offset)
	list := make([]*entity.Supplier, 0)
	err = r.queryRows(ctx, "list suppliers", qb, func(s scanner) error {
		sp, err := scanSupplier(s)
		if err != nil {
			return err
		}
		list = append(list, sp)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ReplaceContacts troca todos os contatos do fornecedor pela lista informada.
func (r *SupplierRepo) ReplaceContacts(ctx context.Context, supplierID string, contacts []map[string]any) ([]entity.SupplierContact, error) {
	if _, err := r.exec(ctx, "delete supplier contacts", psql.Delete("supplier_contacts").Where(squirrel.Eq{"supplier_id": supplierID})); err != nil {
		return nil, err
	}
	out := make([]entity.SupplierContact, 0, len(contacts))
	for _, values := range contacts {
		row := make(map[string]any, len(values)+1)
		for k, v := range values {
			row[k] = v
		}
		row["supplier_id"] = supplierID
		qb := psql.Insert("supplier_contacts").SetMap(row).Suffix("RETURNING " + contactColumns)
		err := r.queryRow(ctx, "insert supplier contact", qb, func(s scanner) error {
			c, err := scanContact(s)
			if err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddFile grava os metadados do arquivo já enviado ao storage.
func (r *SupplierRepo) AddFile(ctx context.Context, f *entity.SupplierFile) error {
	qb := psql.Insert("supplier_files").
		Columns("unit_id", "supplier_id", "file_name", "storage_key", "content_type", "size_bytes", "uploaded_by").
		Values(f.UnitID, f.SupplierID, f.FileName, f.StorageKey, f.ContentType, f.SizeBytes, f.UploadedBy).
		Suffix("RETURNING id, created_at")
	return r.queryRow(ctx, "insert supplier file", qb, func(s scanner) error {
		return s.Scan(&f.ID, &f.CreatedAt)
	})
}

// FindFile busca os metadados de um arquivo da unidade.
func (r *SupplierRepo) FindFile(ctx context.Context, unitID, fileID string) (*entity.SupplierFile, error) {
	var f *entity.SupplierFile
	qb := psql.Select(fileColumns).From("supplier_files").Where(squirrel.Eq{"id": fileID, "unit_id": unitID})
	err := r.queryRow(ctx, "find supplier file", qb, func(s scanner) (err error) {
		f, err = scanFile(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListFiles arquivos do fornecedor, mais recentes primeiro.
func (r *SupplierRepo) ListFiles(ctx context.Context, unitID, supplierID string) ([]*entity.SupplierFile, error) {
	qb := psql.Select(fileColumns).From("supplier_files").
		Where(squirrel.Eq{"unit_id": unitID, "supplier_id": supplierID}).
		OrderBy("created_at DESC")
	list := make([]*entity.SupplierFile, 0)
	err := r.queryRows(ctx, "list supplier files", qb, func(s scanner) error {
		f, err := scanFile(s)
		if err != nil {
			return err
		}
		list = append(list, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteFile remove os metadados do arquivo.
func (r *SupplierRepo) DeleteFile(ctx context.Context, unitID, fileID string) error {
	return r.execOne(ctx, "delete supplier file", psql.Delete("supplier_files").Where(squirrel.Eq{"id": fileID, "unit_id": unitID}))
}
