package customers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/billcollect/billcollect/internal/customers"
	"github.com/billcollect/billcollect/internal/shared"
)

type ServiceSuite struct {
	suite.Suite
	repo *memoryRepo
	svc  *customers.Service
	ctx  context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.repo = newMemoryRepo()
	s.svc = customers.NewService(s.repo)
	s.ctx = context.Background()
}

func (s *ServiceSuite) create(tenantID, name string) *customers.Customer {
	c, err := s.svc.Create(s.ctx, tenantID, customers.CreateCustomerRequest{Name: name})
	s.Require().NoError(err)
	return c
}

func (s *ServiceSuite) TestCreateAppliesDefaults() {
	c := s.create("tenant-a", "Acme")

	s.NotEmpty(c.ID)
	s.Equal(customers.StatusDue, c.Status)
	s.True(c.Package.Equal(shared.ZeroAmount))
	s.True(c.TotalBills.Equal(shared.ZeroAmount))
	s.True(c.Outstanding.Equal(shared.ZeroAmount))
	s.Equal("tenant-a", c.UserID)
	s.False(c.CreatedAt.IsZero())
	s.Equal(c.CreatedAt, c.UpdatedAt)
}

func (s *ServiceSuite) TestCreateThenGetReturnsSuppliedFields() {
	phone := "555-0100"
	pkg := shared.MustAmount("499.00")
	created, err := s.svc.Create(s.ctx, "tenant-a", customers.CreateCustomerRequest{
		Name:    "Acme",
		Phone:   &phone,
		Package: &pkg,
		Status:  "temporary close",
	})
	s.Require().NoError(err)

	got, err := s.svc.Get(s.ctx, created.ID, "tenant-a")
	s.Require().NoError(err)
	s.Equal(*created, *got)
	s.Equal("555-0100", *got.Phone)
	s.Equal("499.00", got.Package.String())
	s.Equal(customers.StatusTemporaryClose, got.Status)
}

func (s *ServiceSuite) TestTenantIsolation() {
	a := s.create("tenant-a", "Alpha")
	s.create("tenant-b", "Beta")

	list, err := s.svc.List(s.ctx, "tenant-a")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(a.ID, list[0].ID)

	_, err = s.svc.Get(s.ctx, a.ID, "tenant-b")
	s.ErrorIs(err, shared.ErrNotFound)

	name := "Stolen"
	_, err = s.svc.Update(s.ctx, a.ID, "tenant-b", customers.UpdateCustomerRequest{Name: &name})
	s.ErrorIs(err, shared.ErrNotFound)

	s.NoError(s.svc.Delete(s.ctx, a.ID, "tenant-b"))
	_, err = s.svc.Get(s.ctx, a.ID, "tenant-a")
	s.NoError(err)
}

func (s *ServiceSuite) TestPartialUpdate() {
	phone := "555-0100"
	created, err := s.svc.Create(s.ctx, "tenant-a", customers.CreateCustomerRequest{Name: "Acme", Phone: &phone})
	s.Require().NoError(err)

	status := "paid"
	outstanding := shared.MustAmount("12.50")
	updated, err := s.svc.Update(s.ctx, created.ID, "tenant-a", customers.UpdateCustomerRequest{
		Status:      &status,
		Outstanding: &outstanding,
	})
	s.Require().NoError(err)

	s.Equal(customers.StatusPaid, updated.Status)
	s.Equal("12.50", updated.Outstanding.String())
	s.Equal("Acme", updated.Name)
	s.Equal("555-0100", *updated.Phone)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))

	again, err := s.svc.Update(s.ctx, created.ID, "tenant-a", customers.UpdateCustomerRequest{})
	s.Require().NoError(err)
	s.True(again.UpdatedAt.After(updated.UpdatedAt))
}

func (s *ServiceSuite) TestDeleteIsIdempotent() {
	c := s.create("tenant-a", "Acme")

	s.Require().NoError(s.svc.Delete(s.ctx, c.ID, "tenant-a"))
	_, err := s.svc.Get(s.ctx, c.ID, "tenant-a")
	s.ErrorIs(err, shared.ErrNotFound)

	s.NoError(s.svc.Delete(s.ctx, c.ID, "tenant-a"))
	s.NoError(s.svc.Delete(s.ctx, "never-existed", "tenant-a"))
}

func (s *ServiceSuite) TestListNewestFirst() {
	first := s.create("tenant-a", "First")
	second := s.create("tenant-a", "Second")
	// force distinct creation times
	row := s.repo.rows[first.ID]
	row.CreatedAt = second.CreatedAt.Add(-time.Second)
	s.repo.rows[first.ID] = row

	list, err := s.svc.List(s.ctx, "tenant-a")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func TestServiceRequiresTenant(t *testing.T) {
	svc := customers.NewService(newMemoryRepo())
	_, err := svc.List(context.Background(), "")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = svc.Create(context.Background(), "", customers.CreateCustomerRequest{Name: "x"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
