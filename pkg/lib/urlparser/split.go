package urlparser

import (
	"errors"
	"strconv"
	"strings"
)

type PathParams struct {
	ProductId int
}

// ParseItemPath extracts the product id from /cart/items/{productId}.
func ParseItemPath(path string) (PathParams, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	params := PathParams{}

	if len(parts) != 3 || parts[0] != "cart" || parts[1] != "items" {
		return params, errors.New("invalid path, expected /cart/items/{productId}")
	}

	productId, err := strconv.Atoi(parts[2])
	if err != nil || productId <= 0 {
		return params, errors.New("invalid productId, must be a positive int")
	}
	params.ProductId = productId

	return params, nil
}
