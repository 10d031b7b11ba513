package mock

import (
	"context"

	"github.com/jubalm/localdocs"
)

var _ localdocs.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of localdocs.DocumentStore.
type DocumentStore struct {
	ListAllFn        func(ctx context.Context) (map[string]localdocs.Metadata, error)
	DeleteFn         func(ctx context.Context, id string) error
	UpdateFn         func(ctx context.Context, id string) error
	SetMetadataFn    func(ctx context.Context, id string, upd localdocs.MetadataUpdate) error
	ExportSelectedFn func(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error
}

func (m *DocumentStore) ListAll(ctx context.Context) (map[string]localdocs.Metadata, error) {
	return m.ListAllFn(ctx)
}

func (m *DocumentStore) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *DocumentStore) Update(ctx context.Context, id string) error {
	return m.UpdateFn(ctx, id)
}

func (m *DocumentStore) SetMetadata(ctx context.Context, id string, upd localdocs.MetadataUpdate) error {
	return m.SetMetadataFn(ctx, id, upd)
}

func (m *DocumentStore) ExportSelected(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error {
	return m.ExportSelectedFn(ctx, packageName, ids, format, absolutePaths)
}

var _ localdocs.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of localdocs.PageWriter.
type PageWriter struct {
	AddPageFn func(ctx context.Context, page *localdocs.Page) (string, error)
}

func (m *PageWriter) AddPage(ctx context.Context, page *localdocs.Page) (string, error) {
	return m.AddPageFn(ctx, page)
}
