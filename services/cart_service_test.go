package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupOrderTestDB(t)
	_, _, menus := seedOrderFixtures(t, db)
	svc := NewCartService(db)

	chatID := int64(222)

	assert.NoError(t, svc.AddItem(chatID, menus[0].ID, 2))
	assert.NoError(t, svc.AddItem(chatID, menus[0].ID, 3))

	items, err := svc.GetCart(chatID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "Nasi Goreng", items[0].Menu.Name)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupOrderTestDB(t)
	_, _, menus := seedOrderFixtures(t, db)
	svc := NewCartService(db)

	assert.Error(t, svc.AddItem(333, menus[0].ID, 0))
	assert.Error(t, svc.AddItem(333, menus[0].ID, -1))

	items, err := svc.GetCart(333)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestClearCartOnlyAffectsOneChat(t *testing.T) {
	db := setupOrderTestDB(t)
	_, _, menus := seedOrderFixtures(t, db)
	svc := NewCartService(db)

	assert.NoError(t, svc.AddItem(444, menus[0].ID, 1))
	assert.NoError(t, svc.AddItem(555, menus[1].ID, 1))

	assert.NoError(t, svc.ClearCart(444))

	items, _ := svc.GetCart(444)
	assert.Empty(t, items)

	other, _ := svc.GetCart(555)
	assert.Len(t, other, 1)
}

func TestCartKeepsSeparateRowsPerMenu(t *testing.T) {
	db := setupOrderTestDB(t)
	_, _, menus := seedOrderFixtures(t, db)
	svc := NewCartService(db)

	assert.NoError(t, svc.AddItem(666, menus[0].ID, 1))
	assert.NoError(t, svc.AddItem(666, menus[1].ID, 2))

	items, err := svc.GetCart(666)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	var total int
	for _, item := range items {
		total += item.Quantity
	}
	assert.Equal(t, 3, total)
}
