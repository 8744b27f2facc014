package employee_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-emdir/internal/employee"
	"go-emdir/internal/employee/mock"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupServiceTest(t *testing.T) (*mock.MockClient, employee.Service, clockwork.FakeClock) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	clock := clockwork.NewFakeClock()
	svc := employee.NewService(client, clock, employee.DefaultCacheTTL, zap.NewNop())
	return client, svc, clock
}

func sampleEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: uuid.New(), Name: "John Doe", Salary: 90000, Age: 30, Title: "Engineer"},
		{ID: uuid.New(), Name: "Jane Roe", Salary: 120000, Age: 41, Title: "Director"},
		{ID: uuid.New(), Name: "Joko Susilo", Salary: 75000, Age: 27, Title: "Analyst"},
	}
}

func TestService_GetAll(t *testing.T) {
	t.Run("serves from cache within TTL", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)

		ctx := context.Background()
		first := svc.GetAll(ctx)
		second := svc.GetAll(ctx)

		assert.Len(t, first, 3)
		assert.Equal(t, first, second)
	})

	t.Run("refetches once TTL has passed", func(t *testing.T) {
		client, svc, clock := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(2)

		ctx := context.Background()
		svc.GetAll(ctx)
		clock.Advance(employee.DefaultCacheTTL + time.Second)
		svc.GetAll(ctx)
	})
}

func TestService_SearchByName(t *testing.T) {
	t.Run("matches case-insensitively on substring", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)

		matched := svc.SearchByName(context.Background(), "jo")

		assert.Len(t, matched, 2)
		assert.Equal(t, "John Doe", matched[0].Name)
		assert.Equal(t, "Joko Susilo", matched[1].Name)
	})

	t.Run("blank query returns empty without touching upstream", func(t *testing.T) {
		_, svc, _ := setupServiceTest(t)

		// Tidak ada EXPECT: List tidak boleh terpanggil sama sekali
		assert.Empty(t, svc.SearchByName(context.Background(), "   "))
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)

		matched := svc.SearchByName(context.Background(), "zzz")
		assert.NotNil(t, matched)
		assert.Empty(t, matched)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("delegates to client", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		id := uuid.New()
		client.EXPECT().GetByID(gomock.Any(), id.String()).
			Return(&employee.Employee{ID: id, Name: "John Doe"})

		empl := svc.GetByID(context.Background(), id.String())

		assert.NotNil(t, empl)
		assert.Equal(t, "John Doe", empl.Name)
	})

	t.Run("blank id short-circuits", func(t *testing.T) {
		_, svc, _ := setupServiceTest(t)
		assert.Nil(t, svc.GetByID(context.Background(), " "))
	})
}

func TestService_HighestSalary(t *testing.T) {
	t.Run("returns the maximum", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)

		max, ok := svc.HighestSalary(context.Background())

		assert.True(t, ok)
		assert.Equal(t, 120000, max)
	})

	t.Run("empty directory reports absence", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(nil).Times(1)

		_, ok := svc.HighestSalary(context.Background())
		assert.False(t, ok)
	})
}

func TestService_TopEarnerNames(t *testing.T) {
	t.Run("returns top ten names by salary descending", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)

		var directory []employee.Employee
		for i := 1; i <= 19; i++ {
			directory = append(directory, employee.Employee{
				ID:     uuid.New(),
				Name:   fmt.Sprintf("Employee %02d", i),
				Salary: 1000 * i,
			})
		}
		client.EXPECT().List(gomock.Any()).Return(directory).Times(1)

		names := svc.TopEarnerNames(context.Background())

		assert.Len(t, names, 10)
		assert.Equal(t, "Employee 19", names[0])
		assert.Equal(t, "Employee 10", names[9])
	})

	t.Run("fewer than ten returns everyone", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)

		names := svc.TopEarnerNames(context.Background())

		assert.Equal(t, []string{"Jane Roe", "John Doe", "Joko Susilo"}, names)
	})
}

func TestService_Create(t *testing.T) {
	input := employee.CreateEmployeeRequest{Name: "John Doe", Salary: 90000, Age: 30, Title: "Engineer"}

	t.Run("success invalidates the snapshot", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		ctx := context.Background()

		// List pertama mengisi cache, List kedua terjadi karena create
		// sukses membuang snapshot
		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(2)
		client.EXPECT().Create(gomock.Any(), input).
			Return(&employee.Employee{ID: uuid.New(), Name: input.Name})

		svc.GetAll(ctx)
		assert.NotNil(t, svc.Create(ctx, input))
		svc.GetAll(ctx)
	})

	t.Run("failure leaves the snapshot untouched", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		ctx := context.Background()

		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)
		client.EXPECT().Create(gomock.Any(), input).Return(nil)

		svc.GetAll(ctx)
		assert.Nil(t, svc.Create(ctx, input))
		svc.GetAll(ctx) // masih dari cache
	})
}

func TestService_Update(t *testing.T) {
	input := employee.CreateEmployeeRequest{Name: "John Doe", Salary: 95000, Age: 30, Title: "Senior Engineer"}

	t.Run("success invalidates the snapshot", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		ctx := context.Background()
		id := uuid.New().String()

		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(2)
		client.EXPECT().Update(gomock.Any(), id, input).
			Return(&employee.Employee{Name: input.Name, Salary: input.Salary})

		svc.GetAll(ctx)
		assert.NotNil(t, svc.Update(ctx, id, input))
		svc.GetAll(ctx)
	})

	t.Run("blank id short-circuits", func(t *testing.T) {
		_, svc, _ := setupServiceTest(t)
		assert.Nil(t, svc.Update(context.Background(), "", input))
	})
}

func TestService_DeleteByIDOrName(t *testing.T) {
	t.Run("plain name deletes directly", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		client.EXPECT().DeleteByName(gomock.Any(), "John Doe").Return(true)

		name, ok := svc.DeleteByIDOrName(context.Background(), "John Doe")

		assert.True(t, ok)
		assert.Equal(t, "John Doe", name)
	})

	t.Run("uuid resolves to name before deleting", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		id := uuid.New()
		client.EXPECT().GetByID(gomock.Any(), id.String()).
			Return(&employee.Employee{ID: id, Name: "John Doe"})
		client.EXPECT().DeleteByName(gomock.Any(), "John Doe").Return(true)

		name, ok := svc.DeleteByIDOrName(context.Background(), id.String())

		assert.True(t, ok)
		assert.Equal(t, "John Doe", name)
	})

	t.Run("unknown uuid never attempts delete", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		id := uuid.New()
		client.EXPECT().GetByID(gomock.Any(), id.String()).Return(nil)
		// Tidak ada EXPECT DeleteByName

		_, ok := svc.DeleteByIDOrName(context.Background(), id.String())
		assert.False(t, ok)
	})

	t.Run("failed delete leaves the snapshot untouched", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		ctx := context.Background()

		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(1)
		client.EXPECT().DeleteByName(gomock.Any(), "Nobody").Return(false)

		svc.GetAll(ctx)
		_, ok := svc.DeleteByIDOrName(ctx, "Nobody")
		assert.False(t, ok)
		svc.GetAll(ctx) // masih dari cache
	})

	t.Run("successful delete invalidates the snapshot", func(t *testing.T) {
		client, svc, _ := setupServiceTest(t)
		ctx := context.Background()

		client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(2)
		client.EXPECT().DeleteByName(gomock.Any(), "John Doe").Return(true)

		svc.GetAll(ctx)
		_, ok := svc.DeleteByIDOrName(ctx, "John Doe")
		assert.True(t, ok)
		svc.GetAll(ctx)
	})

	t.Run("blank input fails fast", func(t *testing.T) {
		_, svc, _ := setupServiceTest(t)
		_, ok := svc.DeleteByIDOrName(context.Background(), "  ")
		assert.False(t, ok)
	})
}

func TestService_InvalidateCache(t *testing.T) {
	client, svc, _ := setupServiceTest(t)
	ctx := context.Background()

	client.EXPECT().List(gomock.Any()).Return(sampleEmployees()).Times(2)

	svc.GetAll(ctx)
	svc.InvalidateCache()
	svc.GetAll(ctx)
}
