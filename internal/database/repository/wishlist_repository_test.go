package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
)

func TestWishlistRepository_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistRepository(db)
	_, cars := seedInventory(t, db)

	buyer := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	first := &models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}
	require.NoError(t, repo.Create(first))

	dup := &models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}
	assert.ErrorIs(t, repo.Create(dup), ErrAlreadyInWishlist)

	// A different car for the same user is fine
	other := &models.WishlistItem{UserID: buyer.ID, CarID: cars[1].ID}
	assert.NoError(t, repo.Create(other))
}

func TestWishlistRepository_RemoveThenReAdd(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistRepository(db)
	_, cars := seedInventory(t, db)

	buyer := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	item := &models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}
	require.NoError(t, repo.Create(item))
	require.NoError(t, repo.Delete(item.ID))

	// The pair must be addable again after a physical delete
	again := &models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}
	assert.NoError(t, repo.Create(again))
}

func TestWishlistRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistRepository(db)
	_, cars := seedInventory(t, db)

	buyer := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	other := models.User{Username: "other", Email: "other@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, repo.Create(&models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}))
	require.NoError(t, repo.Create(&models.WishlistItem{UserID: other.ID, CarID: cars[1].ID}))

	items, err := repo.ListByUser(buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, cars[0].ID, items[0].CarID)
	assert.Equal(t, "Toyota", items[0].Car.Brand)
	assert.Equal(t, "SUV", items[0].Car.Category.Name)
}

func TestWishlistRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistRepository(db)
	_, cars := seedInventory(t, db)

	buyer := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	item := &models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}
	require.NoError(t, repo.Create(item))

	byID, err := repo.FindByIDForUser(item.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, byID.ID)

	// Another user's id must not resolve the row
	_, err = repo.FindByIDForUser(item.ID, buyer.ID+1)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)

	byCar, err := repo.FindByUserAndCar(buyer.ID, cars[0].ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, byCar.ID)

	_, err = repo.FindByUserAndCar(buyer.ID, 9999)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistRepository_DeleteByUserAndCar_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWishlistRepository(db)
	_, cars := seedInventory(t, db)

	buyer := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&buyer).Error)

	require.NoError(t, repo.Create(&models.WishlistItem{UserID: buyer.ID, CarID: cars[0].ID}))

	require.NoError(t, repo.DeleteByUserAndCar(buyer.ID, cars[0].ID))

	// Second delete of the same pair is a no-op, not an error
	assert.NoError(t, repo.DeleteByUserAndCar(buyer.ID, cars[0].ID))
}
