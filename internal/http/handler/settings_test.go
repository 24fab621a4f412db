package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"platformapi/internal/model"
	"platformapi/internal/service"
	serviceMocks "platformapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettingsApp(svc service.SettingsService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, Deps{Auth: asUser("admin-1", model.RoleAdmin), Settings: svc})
	return app
}

func TestPutSetting(t *testing.T) {
	stored := &model.Setting{ID: "s1", Key: "document_max_size_bytes", Value: "1048576", Type: model.SettingTypeNumber, UpdatedAt: time.Now()}

	tests := []struct {
		name       string
		body       string
		setupMock  func(m *serviceMocks.MockSettingsService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "number",
			body: `{"type":"number","value":1048576}`,
			setupMock: func(m *serviceMocks.MockSettingsService) {
				m.On("Write", mock.Anything, "document_max_size_bytes", model.NumberValue(1048576)).Return(stored, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "json object",
			body: `{"type":"json","value":{"a":1}}`,
			setupMock: func(m *serviceMocks.MockSettingsService) {
				m.On("Write", mock.Anything, "document_max_size_bytes", mock.MatchedBy(func(v model.SettingValue) bool {
					j, ok := v.(model.JSONValue)
					return ok && string(j) == `{"a":1}`
				})).Return(stored, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "value does not match type",
			body:       `{"type":"number","value":"big"}`,
			setupMock:  func(m *serviceMocks.MockSettingsService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "unknown type",
			body:       `{"type":"date","value":"2024-01-01"}`,
			setupMock:  func(m *serviceMocks.MockSettingsService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "missing value",
			body:       `{"type":"string"}`,
			setupMock:  func(m *serviceMocks.MockSettingsService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "malformed body",
			body:       `{"type":`,
			setupMock:  func(m *serviceMocks.MockSettingsService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
		{
			name: "repository failure",
			body: `{"type":"boolean","value":true}`,
			setupMock: func(m *serviceMocks.MockSettingsService) {
				m.On("Write", mock.Anything, "document_max_size_bytes", model.BoolValue(true)).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMocks.MockSettingsService)
			tt.setupMock(svc)

			resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodPut, "/api/admin/settings/document_max_size_bytes", tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var s model.Setting
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
				assert.Equal(t, "s1", s.ID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDeleteSetting(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(serviceMocks.MockSettingsService)
		svc.On("Delete", mock.Anything, "maintenance_mode").Return(nil)

		resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodDelete, "/api/admin/settings/maintenance_mode", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("missing key", func(t *testing.T) {
		svc := new(serviceMocks.MockSettingsService)
		svc.On("Delete", mock.Anything, "maintenance_mode").
			Return(fmt.Errorf("%w: setting %q does not exist", service.ErrNotFound, "maintenance_mode"))

		resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodDelete, "/api/admin/settings/maintenance_mode", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, `setting "maintenance_mode" does not exist`, body.Error.Message)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := new(serviceMocks.MockSettingsService)
		svc.On("Delete", mock.Anything, "maintenance_mode").Return(errors.New("db down"))

		resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodDelete, "/api/admin/settings/maintenance_mode", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", decodeError(t, resp).Error.Message)
	})
}

func TestListSettings(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		svc := new(serviceMocks.MockSettingsService)
		svc.On("List", mock.Anything, 50, 0).Return(&service.SettingListResult{
			Items: []model.Setting{{Key: "a"}}, Total: 1, Limit: 50,
		}, nil)

		resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodGet, "/api/admin/settings", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body["data"], 1)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("out of range limit", func(t *testing.T) {
		svc := new(serviceMocks.MockSettingsService)
		svc.On("List", mock.Anything, 500, 0).Return(nil, fmt.Errorf("%w: limit must be between 1 and 100", service.ErrValidation))

		resp, err := newSettingsApp(svc).Test(jsonRequest(http.MethodGet, "/api/admin/settings?limit=500", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "limit must be between 1 and 100", decodeError(t, resp).Error.Message)
	})

	t.Run("non-numeric offset", func(t *testing.T) {
		resp, err := newSettingsApp(new(serviceMocks.MockSettingsService)).Test(jsonRequest(http.MethodGet, "/api/admin/settings?offset=z", ""))
		require.NoError(t, err)

		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})
}
