package mocks

import (
	"context"

	"platformapi/internal/model"
	"platformapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockConsentService struct {
	mock.Mock
}

func (m *MockConsentService) RecordConsent(ctx context.Context, in service.ConsentInput) (*model.ConsentRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConsentRecord), args.Error(1)
}

type MockFileAccessService struct {
	mock.Mock
}

func (m *MockFileAccessService) ResolveDownloadURL(ctx context.Context, userID, key string) (string, error) {
	args := m.Called(ctx, userID, key)
	return args.String(0), args.Error(1)
}
