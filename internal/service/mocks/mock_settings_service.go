package mocks

import (
	"context"
	"encoding/json"

	"platformapi/internal/model"
	"platformapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) ReadNumber(ctx context.Context, key string, fallback float64) (float64, error) {
	args := m.Called(ctx, key, fallback)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSettingsService) ReadString(ctx context.Context, key string, fallback string) (string, error) {
	args := m.Called(ctx, key, fallback)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsService) ReadBool(ctx context.Context, key string, fallback bool) (bool, error) {
	args := m.Called(ctx, key, fallback)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsService) ReadJSON(ctx context.Context, key string, fallback json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, key, fallback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockSettingsService) Write(ctx context.Context, key string, value model.SettingValue) (*model.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingsService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSettingsService) List(ctx context.Context, limit, offset int) (*service.SettingListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SettingListResult), args.Error(1)
}
