package employee

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	employeeerrors "go-emdir/internal/employee/errors"
	"go-emdir/internal/shared/apperror"
	"go-emdir/internal/shared/contextutil"
	"go-emdir/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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
	// Logger scoped per request (sudah membawa request_id dari middleware)
	l := contextutil.GetLogger(c.Request.Context(), h.logger)
	l.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get all employees")

	resp := h.service.GetAll(ctx)

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "name")))
	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "asc")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "salary":
			less = resp[i].Salary < resp[j].Salary
		case "id":
			less = resp[i].ID.String() < resp[j].ID.String()
		default:
			less = strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		}
		if sortDir == "desc" {
			return !less
		}
		return less
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Param("name")
	h.logger.Debug("http search employees", zap.String("query", query))

	resp := h.service.SearchByName(ctx, query)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	empl := h.service.GetByID(ctx, id)
	if empl == nil {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	response.Success(c, http.StatusOK, empl, nil)
}

func (h *Handler) HighestSalary(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get highest salary")

	salary, ok := h.service.HighestSalary(ctx)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrNoEmployeeData)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"highest_salary": salary}, nil)
}

func (h *Handler) TopEarners(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get top earner names")

	names := h.service.TopEarnerNames(ctx)
	response.Success(c, http.StatusOK, names, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http create employee")

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	created := h.service.Create(ctx, req)
	if created == nil {
		h.writeServiceError(c, employeeerrors.ErrUpstreamUnavailable)
		return
	}

	response.Success(c, http.StatusCreated, created, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	updated := h.service.Update(ctx, id, req)
	if updated == nil {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	response.Success(c, http.StatusOK, updated, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	idOrName := c.Param("id")
	h.logger.Debug("http delete employee", zap.String("id_or_name", idOrName))

	name, ok := h.service.DeleteByIDOrName(ctx, idOrName)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return
	}

	response.Success(c, http.StatusOK, DeleteEmployeeResponse{Deleted: true, Name: name}, nil)
}

func (h *Handler) InvalidateCache(c *gin.Context) {
	h.logger.Info("manual cache invalidation triggered")
	h.service.InvalidateCache()
	response.Success(c, http.StatusOK, gin.H{"invalidated": true}, nil)
}
