package employmenttype_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-empledger/internal/employmenttype"
	employmenttypeerrors "go-empledger/internal/employmenttype/errors"
	employmenttypeMock "go-empledger/internal/employmenttype/mock"
	"go-empledger/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(svc employmenttype.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	employmenttype.RegisterRoutes(r.Group("/api"), employmenttype.NewHandler(svc))
	return r
}

func TestEmploymentTypeHandler_GetAll(t *testing.T) {
	t.Run("both paths list types", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employmenttypeMock.NewMockService(ctrl)
		svc.EXPECT().GetAll(gomock.Any()).Return([]employmenttype.EmploymentTypeResponse{
			{ID: "1", Name: "Permanent", PayCadence: "monthly"},
		}, nil).Times(2)
		r := setupRouter(svc)

		for _, path := range []string{"/api/employment-types", "/api/employee-types"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"ok":true`)
			assert.Contains(t, w.Body.String(), "Permanent")
			assert.Contains(t, w.Body.String(), `"total":1`)
		}
	})

	t.Run("empty catalog is 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employmenttypeMock.NewMockService(ctrl)
		svc.EXPECT().GetAll(gomock.Any()).Return(nil, employmenttypeerrors.ErrNoEmploymentTypes)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employment-types", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No employment types found")
	})
}

func TestEmploymentTypeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employmenttypeMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), employmenttype.CreateEmploymentTypeRequest{Name: "Contract", PayCadence: "daily"}).
			Return(employmenttype.EmploymentTypeResponse{ID: "1", Name: "Contract", PayCadence: "daily"}, nil)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employment-types", strings.NewReader(`{"name":"Contract","payCadence":"daily"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Contract")
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employmenttypeMock.NewMockService(ctrl)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employment-types", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employmenttypeMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(employmenttype.EmploymentTypeResponse{}, employmenttypeerrors.ErrEmploymentTypeAlreadyExists)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/employment-types", strings.NewReader(`{"name":"Contract","payCadence":"daily"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}
