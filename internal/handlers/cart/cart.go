package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"rocketcart/internal/clients/shopapi"
	"rocketcart/internal/models"
	"rocketcart/internal/notify"
	serviceerrors "rocketcart/internal/service"
	cartservice "rocketcart/internal/service/cart"
	"rocketcart/pkg/lib/logger/sl"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const StatusClientClosedRequest = 499

type CartService interface {
	Cart() []models.CartItem
	Total() decimal.Decimal
	AddProduct(ctx context.Context, productId int) error
	RemoveProduct(ctx context.Context, productId int) error
	UpdateProductAmount(ctx context.Context, upd models.UpdateProductAmount) error
}

type NotificationFeed interface {
	Recent() []notify.Notification
}

type Handler struct {
	log      *slog.Logger
	service  CartService
	feed     NotificationFeed
	validate *validator.Validate
}

func New(log *slog.Logger, service CartService, feed NotificationFeed) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		feed:     feed,
		validate: validator.New(),
	}
}

type AddProductRequest struct {
	ProductId int `json:"product_id" validate:"required,gt=0"`
}

type UpdateAmountRequest struct {
	Amount *int `json:"amount" validate:"required"`
}

type CartLine struct {
	models.CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// GET /cart
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ViewCart"
	h.respond(w, h.log.With("op", op), http.StatusOK, h.view())
}

// POST /cart/items
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddProduct"
	log := h.log.With("op", op)

	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Cannot decode request body", sl.Err(err))
		http.Error(w, "Cannot decode request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		log.Warn("Failed to validate", sl.Err(err))
		http.Error(w, "product_id must be a positive integer", http.StatusBadRequest)
		return
	}

	if err := h.service.AddProduct(r.Context(), req.ProductId); err != nil {
		h.fail(w, log, err, cartservice.MsgAddFailed)
		return
	}

	h.respond(w, log, http.StatusCreated, h.view())
}

// PUT /cart/items/{productId}
func (h *Handler) UpdateProductAmount(w http.ResponseWriter, r *http.Request, productId int) {
	const op = "handlers.cart.UpdateProductAmount"
	log := h.log.With("op", op, "product_id", productId)

	var req UpdateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Cannot decode request body", sl.Err(err))
		http.Error(w, "Cannot decode request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		log.Warn("Failed to validate", sl.Err(err))
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	upd := models.UpdateProductAmount{ProductId: productId, Amount: *req.Amount}
	if err := h.service.UpdateProductAmount(r.Context(), upd); err != nil {
		h.fail(w, log, err, cartservice.MsgUpdateFailed)
		return
	}

	h.respond(w, log, http.StatusOK, h.view())
}

// DELETE /cart/items/{productId}
func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request, productId int) {
	const op = "handlers.cart.RemoveProduct"
	log := h.log.With("op", op, "product_id", productId)

	if err := h.service.RemoveProduct(r.Context(), productId); err != nil {
		h.fail(w, log, err, cartservice.MsgRemoveFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /notifications
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.Notifications"

	recent := h.feed.Recent()
	if recent == nil {
		recent = []notify.Notification{}
	}
	h.respond(w, h.log.With("op", op), http.StatusOK, recent)
}

func (h *Handler) view() CartView {
	items := h.service.Cart()

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{CartItem: item, Subtotal: item.Subtotal()})
	}

	return CartView{
		Items: lines,
		Total: h.service.Total(),
	}
}

func (h *Handler) fail(w http.ResponseWriter, log *slog.Logger, err error, message string) {
	switch {
	case errors.Is(err, serviceerrors.ErrContextCanceled):
		log.Warn("Context canceled", sl.Err(err))
		http.Error(w, "Context canceled", StatusClientClosedRequest)
	case errors.Is(err, serviceerrors.ErrDeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(err))
		http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
	case errors.Is(err, serviceerrors.ErrOutOfStock):
		http.Error(w, cartservice.MsgOutOfStock, http.StatusConflict)
	case errors.Is(err, serviceerrors.ErrNotFound), errors.Is(err, shopapi.ErrNotFound):
		http.Error(w, message, http.StatusNotFound)
	case errors.Is(err, shopapi.ErrUnexpectedStatus), errors.Is(err, shopapi.ErrInvalidPayload):
		log.Error("Shop API failure", sl.Err(err))
		http.Error(w, message, http.StatusBadGateway)
	default:
		log.Error(message, sl.Err(err))
		http.Error(w, message, http.StatusInternalServerError)
	}
}

func (h *Handler) respond(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to respond user", sl.Err(err))
	}
}
