package employee

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const topEarnerCount = 10

// Service tidak pernah mengembalikan error untuk kegagalan yang memang
// diantisipasi: hasilnya selalu koleksi kosong, nil, atau boolean false.
// Layer handler yang menerjemahkan ke status transport.
type Service interface {
	GetAll(ctx context.Context) []Employee
	SearchByName(ctx context.Context, query string) []Employee
	GetByID(ctx context.Context, id string) *Employee
	HighestSalary(ctx context.Context) (int, bool)
	TopEarnerNames(ctx context.Context) []string
	Create(ctx context.Context, req CreateEmployeeRequest) *Employee
	Update(ctx context.Context, id string, req CreateEmployeeRequest) *Employee
	DeleteByIDOrName(ctx context.Context, idOrName string) (string, bool)
	InvalidateCache()
}

type service struct {
	client Client
	cache  *snapshotCache
	logger *zap.Logger
}

func NewService(client Client, clock clockwork.Clock, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		client: client,
		cache:  newSnapshotCache(client.List, clock, cacheTTL, l),
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) []Employee {
	return s.cache.Get(ctx)
}

func (s *service) SearchByName(ctx context.Context, query string) []Employee {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Employee{}
	}

	lower := strings.ToLower(query)
	matched := []Employee{}
	for _, e := range s.cache.Get(ctx) {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			matched = append(matched, e)
		}
	}
	s.logger.Debug("search by name",
		zap.String("query", query),
		zap.Int("matches", len(matched)),
	)
	return matched
}

func (s *service) GetByID(ctx context.Context, id string) *Employee {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return s.client.GetByID(ctx, id)
}

func (s *service) HighestSalary(ctx context.Context) (int, bool) {
	employees := s.cache.Get(ctx)
	if len(employees) == 0 {
		return 0, false
	}

	max := employees[0].Salary
	for _, e := range employees[1:] {
		if e.Salary > max {
			max = e.Salary
		}
	}
	return max, true
}

func (s *service) TopEarnerNames(ctx context.Context) []string {
	employees := s.cache.Get(ctx)

	// Stable: gaji sama mempertahankan urutan snapshot asli
	sort.SliceStable(employees, func(i, j int) bool {
		return employees[i].Salary > employees[j].Salary
	})

	limit := topEarnerCount
	if len(employees) < limit {
		limit = len(employees)
	}
	names := make([]string, 0, limit)
	for _, e := range employees[:limit] {
		names = append(names, e.Name)
	}
	return names
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) *Employee {
	created := s.client.Create(ctx, req)
	if created == nil {
		s.logger.Warn("employee creation returned empty result",
			zap.String("name", req.Name),
		)
		return nil
	}

	// Invalidasi sinkron sebelum kembali ke pemanggil: read berikutnya
	// wajib fetch ulang
	s.cache.Invalidate()
	s.logger.Info("created new employee",
		zap.String("employee_id", created.ID.String()),
		zap.String("name", created.Name),
	)
	return created
}

func (s *service) Update(ctx context.Context, id string, req CreateEmployeeRequest) *Employee {
	if strings.TrimSpace(id) == "" {
		return nil
	}

	updated := s.client.Update(ctx, id, req)
	if updated == nil {
		s.logger.Warn("employee update returned empty result",
			zap.String("employee_id", id),
		)
		return nil
	}

	s.cache.Invalidate()
	s.logger.Info("updated employee", zap.String("employee_id", id))
	return updated
}

// DeleteByIDOrName: kontrak publik menerima id atau name, tapi endpoint
// delete upstream hanya menerima name. Input yang valid sebagai UUID
// di-resolve dulu ke name lewat GetByID; tidak ketemu berarti gagal tanpa
// ada percobaan delete.
func (s *service) DeleteByIDOrName(ctx context.Context, idOrName string) (string, bool) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		s.logger.Warn("cannot delete employee: idOrName is blank")
		return "", false
	}

	if _, err := uuid.Parse(idOrName); err == nil {
		s.logger.Debug("parameter looks like UUID, resolving employee first",
			zap.String("employee_id", idOrName),
		)
		empl := s.GetByID(ctx, idOrName)
		if empl == nil {
			s.logger.Warn("employee not found for id", zap.String("employee_id", idOrName))
			return "", false
		}
		return s.deleteByName(ctx, empl.Name)
	}

	return s.deleteByName(ctx, idOrName)
}

func (s *service) deleteByName(ctx context.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if !s.client.DeleteByName(ctx, name) {
		// Mutasi gagal: cache tidak disentuh
		s.logger.Warn("employee not found or could not be deleted", zap.String("name", name))
		return "", false
	}

	s.cache.Invalidate()
	s.logger.Info("deleted employee", zap.String("name", name))
	return name, true
}

func (s *service) InvalidateCache() {
	s.cache.Invalidate()
}
