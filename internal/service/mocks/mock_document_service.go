package mocks

import (
	"context"

	"platformapi/internal/model"
	"platformapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) BeginUpload(ctx context.Context, ownerID string, d service.UploadDescriptor) (*service.UploadTicket, error) {
	args := m.Called(ctx, ownerID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadTicket), args.Error(1)
}

func (m *MockDocumentService) ConfirmUpload(ctx context.Context, ownerID, id string) (*model.Document, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) GetUpload(ctx context.Context, ownerID, id string) (*model.DocumentWithURL, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentWithURL), args.Error(1)
}

func (m *MockDocumentService) ListUploads(ctx context.Context, ownerID string, filter service.DocumentFilter) ([]model.DocumentWithURL, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentWithURL), args.Error(1)
}

func (m *MockDocumentService) DeleteUpload(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
