package mocks

import (
	"context"
	"time"

	"platformapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) PresignUpload(ctx context.Context, key string, p storage.UploadPolicy) (storage.UploadTarget, error) {
	args := m.Called(ctx, key, p)
	if f, ok := args.Get(0).(func(context.Context, string, storage.UploadPolicy) storage.UploadTarget); ok {
		return f(ctx, key, p), args.Error(1)
	}
	return args.Get(0).(storage.UploadTarget), args.Error(1)
}

func (m *MockStorage) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
