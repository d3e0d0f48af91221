package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

type fakeSuppliers struct {
	repository.SupplierRepository
	supplier *entity.Supplier
	files    map[string]*entity.SupplierFile
	addErr   error
}

func (f *fakeSuppliers) FindByID(_ context.Context, unitID, id string) (*entity.Supplier, error) {
	if f.supplier == nil || f.supplier.ID != id || f.supplier.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	return f.supplier, nil
}

func (f *fakeSuppliers) AddFile(_ context.Context, file *entity.SupplierFile) error {
	if f.addErr != nil {
		return f.addErr
	}
	file.ID = "arq-1"
	f.files[file.ID] = file
	return nil
}

func (f *fakeSuppliers) FindFile(_ context.Context, unitID, id string) (*entity.SupplierFile, error) {
	file, ok := f.files[id]
	if !ok || file.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	return file, nil
}

func (f *fakeSuppliers) DeleteFile(_ context.Context, unitID, id string) error {
	if _, ok := f.files[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.files, id)
	return nil
}

// memStorage bucket em memória.
type memStorage struct {
	objects map[string]string
	types   map[string]string
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string]string{}, types: map[string]string{}}
}

func (s *memStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = string(raw)
	s.types[key] = contentType
	return nil
}

func (s *memStorage) PresignGet(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://files.local/" + key + "?expires=" + expires.String(), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

var _ ports.ObjectStorage = (*memStorage)(nil)

func newSupplierFixture(storage ports.ObjectStorage) (*SupplierUseCase, *fakeSuppliers, *recorder) {
	repo := &fakeSuppliers{
		supplier: &entity.Supplier{ID: "forn-1", UnitID: testUnit, Name: "Distribuidora Navalha"},
		files:    map[string]*entity.SupplierFile{},
	}
	rec := &recorder{}
	return NewSupplierUseCase(repo, &fakeTx{}, storage, 10*time.Minute, rec.reporting()), repo, rec
}

const notaFiscal = "%PDF-1.4 nota fiscal"

func TestSupplierUpload_GravaObjetoEMetadados(t *testing.T) {
	storage := newMemStorage()
	uc, repo, rec := newSupplierFixture(storage)

	res, err := uc.UploadFile(context.Background(), adminActor, "forn-1", `..\..\nota.pdf`, "application/pdf; charset=binary",
		int64(len(notaFiscal)), strings.NewReader(notaFiscal))
	require.NoError(t, err)

	assert.Equal(t, "nota.pdf", res.FileName)
	assert.Equal(t, "application/pdf", res.ContentType)
	require.Len(t, storage.objects, 1)
	for key, content := range storage.objects {
		assert.True(t, strings.HasPrefix(key, "units/unit-1/suppliers/forn-1/"))
		assert.True(t, strings.HasSuffix(key, "-nota.pdf"))
		assert.Equal(t, notaFiscal, content)
		assert.Equal(t, key, repo.files["arq-1"].StorageKey)
	}
	assert.Equal(t, adminActor.UserID, repo.files["arq-1"].UploadedBy)
	assert.Contains(t, res.DownloadURL, "expires=10m0s")

	require.Len(t, rec.notes, 1)
	assert.Equal(t, "supplier_file", rec.notes[0].Entity)
	assert.Equal(t, ports.LevelSuccess, rec.notes[0].Level)
}

func TestSupplierUpload_FalhaNoBancoRemoveObjeto(t *testing.T) {
	storage := newMemStorage()
	uc, repo, _ := newSupplierFixture(storage)
	repo.addErr = domain.Wrap(domain.ErrNetwork, "insert: %w", errors.New("conexão perdida"))

	_, err := uc.UploadFile(context.Background(), adminActor, "forn-1", "nota.pdf", "application/pdf",
		int64(len(notaFiscal)), strings.NewReader(notaFiscal))
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Empty(t, storage.objects)
	assert.Len(t, storage.deleted, 1)
}

func TestSupplierUpload_Rejeicoes(t *testing.T) {
	cases := []struct {
		name        string
		supplierID  string
		contentType string
		size        int64
		want        error
	}{
		{"tipo não permitido", "forn-1", "application/zip", 10, domain.ErrInvalidInput},
		{"arquivo vazio", "forn-1", "image/png", 0, domain.ErrInvalidInput},
		{"maior que o limite", "forn-1", "image/png", MaxSupplierFileSize + 1, domain.ErrInvalidInput},
		{"fornecedor de outra unidade", "forn-2", "image/png", 10, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := newMemStorage()
			uc, _, _ := newSupplierFixture(storage)
			_, err := uc.UploadFile(context.Background(), adminActor, tc.supplierID, "x.png", tc.contentType, tc.size, strings.NewReader("0123456789"))
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, storage.objects)
		})
	}
}

func TestSupplierUpload_SemStorageConfigurado(t *testing.T) {
	uc, _, _ := newSupplierFixture(nil)

	_, err := uc.UploadFile(context.Background(), adminActor, "forn-1", "nota.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSupplierDeleteFile_RemoveMetadadosEObjeto(t *testing.T) {
	storage := newMemStorage()
	uc, repo, rec := newSupplierFixture(storage)
	_, err := uc.UploadFile(context.Background(), adminActor, "forn-1", "nota.pdf", "application/pdf",
		int64(len(notaFiscal)), strings.NewReader(notaFiscal))
	require.NoError(t, err)
	key := repo.files["arq-1"].StorageKey

	require.NoError(t, uc.DeleteFile(context.Background(), adminActor, "arq-1"))
	assert.Empty(t, repo.files)
	assert.Equal(t, []string{key}, storage.deleted)
	assert.Equal(t, "Arquivo removido.", rec.notes[len(rec.notes)-1].Message)

	err = uc.DeleteFile(context.Background(), adminActor, "arq-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierFiles_BarbeiroNaoEnvia(t *testing.T) {
	storage := newMemStorage()
	uc, _, _ := newSupplierFixture(storage)

	_, err := uc.UploadFile(context.Background(), barberActor, "forn-1", "nota.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.ErrorIs(t, uc.DeleteFile(context.Background(), barberActor, "arq-1"), domain.ErrPermissionDenied)
	assert.Empty(t, storage.objects)
}
