package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-emdir/internal/resilience"

	"go.uber.org/zap"
)

const basePath = "/api/v1/employee"

//go:generate mockgen -source=employee_client.go -destination=mock/employee_client_mock.go -package=mock
type Client interface {
	List(ctx context.Context) []Employee
	GetByID(ctx context.Context, id string) *Employee
	Create(ctx context.Context, input CreateEmployeeRequest) *Employee
	Update(ctx context.Context, id string, input CreateEmployeeRequest) *Employee
	DeleteByName(ctx context.Context, name string) bool
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// Pipeline adalah state resilience bersama untuk semua operasi client
	// ini. RetryIf diisi otomatis dengan classifier transient client.
	Pipeline resilience.PipelineConfig
}

func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:  baseURL,
		Timeout:  10 * time.Second,
		Pipeline: resilience.DefaultPipelineConfig("employee-upstream"),
	}
}

type httpClient struct {
	baseURL  string
	hc       *http.Client
	pipeline *resilience.Pipeline
	logger   *zap.Logger
}

// NewClient membangun upstream client dengan pipeline-nya sendiri.
// State pipeline dibuat sekali di sini dan dipakai seumur proses.
func NewClient(cfg ClientConfig, logger ...*zap.Logger) Client {
	l := zap.L().Named("employee.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.client")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Pipeline.Retry.RetryIf == nil {
		cfg.Pipeline.Retry.RetryIf = isTransientError
	}
	if cfg.Pipeline.CircuitBreaker.OnStateChange == nil {
		cfg.Pipeline.CircuitBreaker.OnStateChange = func(name string, from, to resilience.State) {
			l.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}
	}

	return &httpClient{
		baseURL:  cfg.BaseURL,
		hc:       &http.Client{Timeout: cfg.Timeout},
		pipeline: resilience.NewPipeline(cfg.Pipeline),
		logger:   l,
	}
}

func (c *httpClient) List(ctx context.Context) []Employee {
	list, err := resilience.Execute(ctx, c.pipeline, func() ([]Employee, error) {
		return callUpstream[[]Employee](ctx, c, http.MethodGet, basePath, nil, "List")
	})
	if err != nil {
		c.logger.Warn("list employees failed", zap.Error(err))
		return []Employee{}
	}
	if list == nil {
		return []Employee{}
	}
	return list
}

func (c *httpClient) GetByID(ctx context.Context, id string) *Employee {
	if id == "" {
		c.logger.Warn("cannot get employee: id is blank")
		return nil
	}

	empl, err := resilience.Execute(ctx, c.pipeline, func() (*Employee, error) {
		path := basePath + "/" + url.PathEscape(id)
		return callUpstream[*Employee](ctx, c, http.MethodGet, path, nil, "GetByID")
	})
	if err != nil {
		c.logger.Warn("get employee by id failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return nil
	}
	return empl
}

func (c *httpClient) Create(ctx context.Context, input CreateEmployeeRequest) *Employee {
	if input.Name == "" {
		c.logger.Warn("cannot create employee: input is empty")
		return nil
	}

	empl, err := resilience.Execute(ctx, c.pipeline, func() (*Employee, error) {
		return callUpstream[*Employee](ctx, c, http.MethodPost, basePath, input, "Create")
	})
	if err != nil {
		c.logger.Warn("create employee failed",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil
	}
	return empl
}

func (c *httpClient) Update(ctx context.Context, id string, input CreateEmployeeRequest) *Employee {
	if id == "" || input.Name == "" {
		c.logger.Warn("cannot update employee: id or input is empty")
		return nil
	}

	empl, err := resilience.Execute(ctx, c.pipeline, func() (*Employee, error) {
		path := basePath + "/" + url.PathEscape(id)
		return callUpstream[*Employee](ctx, c, http.MethodPut, path, input, "Update")
	})
	if err != nil {
		c.logger.Warn("update employee failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return nil
	}
	return empl
}

func (c *httpClient) DeleteByName(ctx context.Context, name string) bool {
	if name == "" {
		c.logger.Warn("cannot delete employee: name is blank")
		return false
	}

	deleted, err := resilience.Execute(ctx, c.pipeline, func() (bool, error) {
		return callUpstream[bool](ctx, c, http.MethodDelete, basePath, deleteEmployeeBody{Name: name}, "DeleteByName")
	})
	if err != nil {
		c.logger.Warn("delete employee by name failed",
			zap.String("name", name),
			zap.Error(err),
		)
		return false
	}
	return deleted
}

// callUpstream mengirim satu request dan menyerap semua kegagalan terminal
// menjadi zero value. Hanya kegagalan transient yang keluar sebagai error,
// dan error itu berhenti di pipeline.
func callUpstream[T any](ctx context.Context, c *httpClient, method, path string, body any, op string) (T, error) {
	var zero T

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("marshal request body failed",
				zap.String("op", op),
				zap.Error(err),
			)
			return zero, nil
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		c.logger.Error("build request failed", zap.String("op", op), zap.Error(err))
		return zero, nil
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		// Kegagalan transport: terminal, hasil kosong
		c.logger.Error("upstream request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.Error(err),
		)
		return zero, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("read upstream response failed", zap.String("op", op), zap.Error(err))
		return zero, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, c.classifyStatus(op, resp.StatusCode)
	}

	// Payload kosong dengan 2xx adalah "no data" yang sah, bukan error
	if len(data) == 0 {
		c.logger.Debug("empty upstream payload", zap.String("op", op))
		return zero, nil
	}

	var env upstreamEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Error("malformed upstream response",
			zap.String("op", op),
			zap.Error(err),
		)
		return zero, nil
	}
	return env.Data, nil
}
