package models_test

import (
	"encoding/json"
	"testing"

	"rocketcart/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItem_Subtotal(t *testing.T) {
	item := models.CartItem{Id: 1, Price: decimal.RequireFromString("139.90"), Amount: 3}

	assert.True(t, decimal.RequireFromString("419.7").Equal(item.Subtotal()))
}

func TestCartItem_DecodesNumericPrice(t *testing.T) {
	var items []models.CartItem
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"Tênis","price":179.9,"image":"x.jpg","amount":2}]`), &items))

	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("179.9").Equal(items[0].Price))
	assert.Equal(t, 2, items[0].Amount)
}

func TestNewCartItem(t *testing.T) {
	p := models.Product{Id: 4, Title: "Tênis", Price: decimal.NewFromInt(10), Image: "4.jpg"}

	item := models.NewCartItem(p, 1)
	assert.Equal(t, 4, item.Id)
	assert.Equal(t, "Tênis", item.Title)
	assert.Equal(t, "4.jpg", item.Image)
	assert.Equal(t, 1, item.Amount)
}
