package models

import "github.com/shopspring/decimal"

type Product struct {
	Id    int             `json:"id" validate:"required,gt=0"`
	Title string          `json:"title" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type Stock struct {
	Id     int `json:"id"`
	Amount int `json:"amount" validate:"gte=0"`
}

// CartItem is a Product held in the cart together with the requested amount.
type CartItem struct {
	Id     int             `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

func NewCartItem(p Product, amount int) CartItem {
	return CartItem{
		Id:     p.Id,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: amount,
	}
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Amount)))
}

type UpdateProductAmount struct {
	ProductId int `json:"product_id"`
	Amount    int `json:"amount"`
}
