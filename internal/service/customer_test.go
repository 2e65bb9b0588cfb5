package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authed(userID uuid.UUID) context.Context {
	return service.WithIdentity(context.Background(), service.Identity{
		UserID: userID,
		Email:  "ana@example.com",
		Name:   "Ana",
		Role:   service.RoleCustomer,
	})
}

func TestCustomerResolver_Unauthenticated(t *testing.T) {
	_, err := service.NewCustomerResolver(&MockCustomerRepo{}).Resolve(context.Background(), service.ContactHint{})
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestCustomerResolver_Existing(t *testing.T) {
	userID := uuid.New()
	existing := &models.Customer{ID: uuid.New(), UserID: userID}
	repo := &MockCustomerRepo{
		GetByUserIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) { return existing, nil },
		CreateIfAbsentFunc: func(ctx context.Context, c *models.Customer) (bool, error) {
			t.Fatal("must not insert when customer exists")
			return false, nil
		},
	}

	c, err := service.NewCustomerResolver(repo).Resolve(authed(userID), service.ContactHint{})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, c.ID)
}

func TestCustomerResolver_CreatesWithHint(t *testing.T) {
	userID := uuid.New()
	var inserted *models.Customer
	repo := &MockCustomerRepo{
		CreateIfAbsentFunc: func(ctx context.Context, c *models.Customer) (bool, error) {
			inserted = c
			return true, nil
		},
	}

	c, err := service.NewCustomerResolver(repo).Resolve(authed(userID), service.ContactHint{FullName: " Ana Pérez ", Phone: "+54 11 5555"})
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "Ana Pérez", c.FullName)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+54 11 5555", *c.Phone)
}

func TestCustomerResolver_LostRace(t *testing.T) {
	userID := uuid.New()
	winner := &models.Customer{ID: uuid.New(), UserID: userID}
	calls := 0
	repo := &MockCustomerRepo{
		GetByUserIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return winner, nil
		},
		CreateIfAbsentFunc: func(ctx context.Context, c *models.Customer) (bool, error) { return false, nil },
	}

	c, err := service.NewCustomerResolver(repo).Resolve(authed(userID), service.ContactHint{})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, c.ID)
	assert.Equal(t, 2, calls)
}

func TestCustomerResolver_Errors(t *testing.T) {
	boom := errors.New("db down")

	_, err := service.NewCustomerResolver(&MockCustomerRepo{
		GetByUserIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) { return nil, boom },
	}).Resolve(authed(uuid.New()), service.ContactHint{})
	assert.ErrorIs(t, err, service.ErrLookup)

	_, err = service.NewCustomerResolver(&MockCustomerRepo{
		CreateIfAbsentFunc: func(ctx context.Context, c *models.Customer) (bool, error) { return false, boom },
	}).Resolve(authed(uuid.New()), service.ContactHint{})
	assert.ErrorIs(t, err, service.ErrWrite)
	assert.ErrorIs(t, err, boom)
}
