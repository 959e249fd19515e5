package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-empledger/internal/asset"
	"go-empledger/internal/employee"
	employeeerrors "go-empledger/internal/employee/errors"
	employeeMock "go-empledger/internal/employee/mock"
	"go-empledger/internal/employeesalary"
	"go-empledger/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *employeeMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := employeeMock.NewMockService(gomock.NewController(t))
	r := gin.New()
	employee.RegisterRoutes(r.Group("/api"), employee.NewHandler(svc), nil)
	return r, svc
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "jane.png")
		assert.NoError(t, err)
		_, err = part.Write(image)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string                `json:"code"`
		Message string                `json:"message"`
		Details []apperror.FieldError `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	typeID := uuid.NewString()
	fields := map[string]string{
		"fullname":      "Jane Doe",
		"contact":       "555-1000",
		"address":       "1 Main St",
		"status":        "active",
		"employeeType":  typeID,
		"currentsalary": "50000",
	}

	t.Run("multipart with image", func(t *testing.T) {
		r, svc := setupRouter(t)
		employeeID := uuid.NewString()

		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, req employee.CreateEmployeeRequest, image *asset.Upload) (employee.CreateEmployeeResponse, error) {
				assert.Equal(t, "Jane Doe", req.FullName)
				assert.Equal(t, typeID, req.EmployeeType)
				assert.Equal(t, employee.Amount("50000"), req.CurrentSalary)
				assert.Equal(t, "jane.png", image.Filename)
				data, _ := io.ReadAll(image.Content)
				assert.Equal(t, []byte("fake-png"), data)
				return employee.CreateEmployeeResponse{
					Employee: employee.EmployeeResponse{ID: employeeID, FullName: req.FullName, CurrentSalary: decimal.RequireFromString("50000")},
					Salary:   employeesalary.EmployeeSalaryResponse{EmployeeSalaryID: 1, EmployeeID: employeeID, AmountIn: decimal.Zero, AmountOut: decimal.Zero, AmountRemaining: decimal.Zero},
				}, nil
			})

		body, contentType := multipartBody(t, fields, []byte("fake-png"))
		req := httptest.NewRequest(http.MethodPost, "/api/add-employee", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"amount_remaining":"0"`)
		assert.Contains(t, w.Body.String(), `"employee_salary_id":1`)
	})

	t.Run("json body accepts a numeric salary", func(t *testing.T) {
		r, svc := setupRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
			DoAndReturn(func(_ context.Context, req employee.CreateEmployeeRequest, _ *asset.Upload) (employee.CreateEmployeeResponse, error) {
				assert.Equal(t, employee.Amount("50000"), req.CurrentSalary)
				return employee.CreateEmployeeResponse{}, nil
			})

		payload := `{"fullname":"Jane Doe","contact":"555-1000","address":"1 Main St","status":"active","employeeType":"` + typeID + `","currentsalary":50000}`
		req := httptest.NewRequest(http.MethodPost, "/api/add-employee", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error lists the field", func(t *testing.T) {
		r, svc := setupRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(employee.CreateEmployeeResponse{}, apperror.Validation(apperror.InvalidField("currentsalary")))

		bad := map[string]string{}
		for k, v := range fields {
			bad[k] = v
		}
		bad["currentsalary"] = "notanumber"
		body, contentType := multipartBody(t, bad, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/add-employee", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
		assert.Equal(t, "currentsalary", env.Error.Details[0].Field)
	})

	t.Run("duplicate employeeid is a 400 conflict", func(t *testing.T) {
		r, svc := setupRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(employee.CreateEmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists)

		body, contentType := multipartBody(t, fields, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/add-employee", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeConflict, decode(t, w).Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		r, _ := setupRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/add-employee", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	r, svc := setupRouter(t)

	svc.EXPECT().GetAll(gomock.Any()).Return([]employee.EmployeeResponse{
		{ID: uuid.NewString(), FullName: "A"},
		{ID: uuid.NewString(), FullName: "B"},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.NewString()

		svc.EXPECT().GetByID(gomock.Any(), id).Return(employee.EmployeeResponse{ID: id, Status: "active"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee/"+id, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupRouter(t)

		svc.EXPECT().GetByID(gomock.Any(), "missing").Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, decode(t, w).Error.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	r, svc := setupRouter(t)
	id := uuid.NewString()

	svc.EXPECT().Update(gomock.Any(), id, gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ string, req employee.UpdateEmployeeRequest, _ *asset.Upload) (employee.EmployeeResponse, error) {
			assert.Empty(t, req.EmployeeID)
			assert.Equal(t, "Jane Roe", req.FullName)
			return employee.EmployeeResponse{ID: id, FullName: req.FullName}, nil
		})

	body, contentType := multipartBody(t, map[string]string{"fullname": "Jane Roe"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/update-employee/"+id, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Roe")
}

func TestEmployeeHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.NewString()

		svc.EXPECT().UpdateStatus(gomock.Any(), id, employee.UpdateStatusRequest{Status: "on_leave"}).
			Return(employee.UpdateStatusResponse{ID: id, Status: "on_leave"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id+"/status", strings.NewReader(`{"status":"on_leave"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"on_leave"`)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.NewString()

		svc.EXPECT().UpdateStatus(gomock.Any(), id, gomock.Any()).
			Return(employee.UpdateStatusResponse{}, employeeerrors.ErrEmployeeNotFound)

		req := httptest.NewRequest(http.MethodPut, "/api/employees/"+id+"/status", strings.NewReader(`{"status":"inactive"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	r, svc := setupRouter(t)
	id := uuid.NewString()

	svc.EXPECT().Delete(gomock.Any(), id).Return(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/employee/"+id, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestEmployeeHandler_Image(t *testing.T) {
	t.Run("streams the image", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.NewString()

		svc.EXPECT().Image(gomock.Any(), id).Return(io.NopCloser(strings.NewReader("png-bytes")), "image/png", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/img/"+id, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "png-bytes", w.Body.String())
	})

	t.Run("no image", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.NewString()

		svc.EXPECT().Image(gomock.Any(), id).Return(nil, "", employeeerrors.ErrImageNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/img/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
