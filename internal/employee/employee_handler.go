package employee

import (
	"errors"
	"net/http"

	"go-empledger/internal/asset"
	"go-empledger/internal/shared/apperror"
	"go-empledger/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const imageField = "image"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http employee bind failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is malformed", err.Error())
}

// imageUpload returns the optional multipart image. The returned closer
// must be called once the request is served.
func (h *Handler) imageUpload(c *gin.Context) (*asset.Upload, func(), error) {
	noop := func() {}
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}

	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &asset.Upload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	image, closeImage, err := h.imageUpload(c)
	if err != nil {
		h.writeBindError(c, err)
		return
	}
	defer closeImage()

	resp, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewListMeta(len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	image, closeImage, err := h.imageUpload(c)
	if err != nil {
		h.writeBindError(c, err)
		return
	}
	defer closeImage()

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Image(c *gin.Context) {
	rc, contentType, err := h.service.Image(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control": "private, max-age=300",
	})
}
