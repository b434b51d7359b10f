package cartservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	databaseerrors "rocketcart/internal/database"
	"rocketcart/internal/models"
	"rocketcart/internal/notify"
	serviceerrors "rocketcart/internal/service"
	"rocketcart/pkg/lib/logger/sl"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgOutOfStock   = "Requested amount is out of stock"
	MsgAddFailed    = "Failed to add product"
	MsgRemoveFailed = "Failed to remove product"
	MsgUpdateFailed = "Failed to update product amount"
)

type SnapshotStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type ShopAPI interface {
	Stock(ctx context.Context, productId int) (models.Stock, error)
	Product(ctx context.Context, productId int) (models.Product, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notify.Notification)
}

// Store owns the cart of one storefront session. Mutations are serialized:
// each one reads the cart, checks remote stock, and commits a new snapshot to
// storage before the in-memory cart is replaced. A failed mutation leaves the
// cart untouched and emits exactly one notification.
type Store struct {
	log      *slog.Logger
	key      string
	storage  SnapshotStorage
	api      ShopAPI
	notifier Notifier
	now      func() time.Time

	opMu sync.Mutex

	mu   sync.RWMutex
	cart []models.CartItem

	subsMu  sync.Mutex
	subs    map[int]func([]models.CartItem)
	nextSub int
}

// New restores the cart persisted under key, or starts with an empty one when
// nothing was saved yet.
func New(
	ctx context.Context,
	log *slog.Logger,
	key string,
	storage SnapshotStorage,
	api ShopAPI,
	notifier Notifier,
) (*Store, error) {
	s := &Store{
		log:      log,
		key:      key,
		storage:  storage,
		api:      api,
		notifier: notifier,
		now:      time.Now,
		subs:     make(map[int]func([]models.CartItem)),
	}

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.cart = cart

	return s, nil
}

func (s *Store) load(ctx context.Context) ([]models.CartItem, error) {
	const op = "service.cart.load"
	log := s.log.With("op", op, "key", s.key)

	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Debug("No stored cart, starting empty")
			return []models.CartItem{}, nil
		}
		log.Error("Failed to read stored cart", sl.Err(err))
		return nil, classify(op, err)
	}

	var stored []models.CartItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Error("Stored cart is not valid json", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cart := make([]models.CartItem, 0, len(stored))
	for _, item := range stored {
		if item.Amount < 1 || indexOf(cart, item.Id) >= 0 {
			log.Warn("Dropping invalid stored item", "product_id", item.Id, "amount", item.Amount)
			continue
		}
		cart = append(cart, item)
	}

	log.Info("Cart restored", "items", len(cart))
	return cart, nil
}

// Cart returns a copy of the current items in the order they were added.
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.cart)
}

// Amounts maps product id to the amount held in the cart.
func (s *Store) Amounts() map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amounts := make(map[int]int, len(s.cart))
	for _, item := range s.cart {
		amounts[item.Id] = item.Amount
	}
	return amounts
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Subscribe registers fn to receive the cart after every committed mutation.
// fn runs on the mutating goroutine and must not call mutating Store methods.
func (s *Store) Subscribe(fn func([]models.CartItem)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) AddProduct(ctx context.Context, productId int) error {
	const op = "service.cart.AddProduct"
	log := s.log.With("op", op, "product_id", productId, "op_id", uuid.NewString())

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, log, op, MsgAddFailed, productId, err)
	}

	next := s.Cart()
	idx := indexOf(next, productId)

	stock, err := s.api.Stock(ctx, productId)
	if err != nil {
		return s.fail(ctx, log, op, MsgAddFailed, productId, err)
	}

	amount := 0
	if idx >= 0 {
		amount = next[idx].Amount
	}

	if amount+1 > stock.Amount {
		return s.fail(ctx, log, op, MsgOutOfStock, productId, serviceerrors.ErrOutOfStock)
	}

	if idx >= 0 {
		next[idx].Amount = amount + 1
	} else {
		product, err := s.api.Product(ctx, productId)
		if err != nil {
			return s.fail(ctx, log, op, MsgAddFailed, productId, err)
		}
		next = append(next, models.NewCartItem(product, 1))
	}

	if err := s.commit(ctx, next); err != nil {
		return s.fail(ctx, log, op, MsgAddFailed, productId, err)
	}

	log.Info("Product added", "amount", amount+1)
	return nil
}

func (s *Store) RemoveProduct(ctx context.Context, productId int) error {
	const op = "service.cart.RemoveProduct"
	log := s.log.With("op", op, "product_id", productId, "op_id", uuid.NewString())

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, log, op, MsgRemoveFailed, productId, err)
	}

	next := s.Cart()
	idx := indexOf(next, productId)
	if idx < 0 {
		return s.fail(ctx, log, op, MsgRemoveFailed, productId, serviceerrors.ErrNotFound)
	}

	next = slices.Delete(next, idx, idx+1)

	if err := s.commit(ctx, next); err != nil {
		return s.fail(ctx, log, op, MsgRemoveFailed, productId, err)
	}

	log.Info("Product removed")
	return nil
}

// UpdateProductAmount sets the amount of a product already in the cart.
// Amounts below one are ignored.
func (s *Store) UpdateProductAmount(ctx context.Context, upd models.UpdateProductAmount) error {
	const op = "service.cart.UpdateProductAmount"
	log := s.log.With("op", op, "product_id", upd.ProductId, "op_id", uuid.NewString())

	if upd.Amount <= 0 {
		log.Debug("Ignoring non-positive amount", "amount", upd.Amount)
		return nil
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, log, op, MsgUpdateFailed, upd.ProductId, err)
	}

	stock, err := s.api.Stock(ctx, upd.ProductId)
	if err != nil {
		return s.fail(ctx, log, op, MsgUpdateFailed, upd.ProductId, err)
	}

	if upd.Amount > stock.Amount {
		return s.fail(ctx, log, op, MsgOutOfStock, upd.ProductId, serviceerrors.ErrOutOfStock)
	}

	next := s.Cart()
	idx := indexOf(next, upd.ProductId)
	if idx < 0 {
		return s.fail(ctx, log, op, MsgUpdateFailed, upd.ProductId, serviceerrors.ErrNotFound)
	}

	next[idx].Amount = upd.Amount

	if err := s.commit(ctx, next); err != nil {
		return s.fail(ctx, log, op, MsgUpdateFailed, upd.ProductId, err)
	}

	log.Info("Product amount updated", "amount", upd.Amount)
	return nil
}

// commit persists next and only then makes it the current cart.
func (s *Store) commit(ctx context.Context, next []models.CartItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}

	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		return err
	}

	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	s.publish(slices.Clone(next))
	return nil
}

func (s *Store) publish(cart []models.CartItem) {
	s.subsMu.Lock()
	subs := make([]func([]models.CartItem), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(slices.Clone(cart))
	}
}

func (s *Store) fail(ctx context.Context, log *slog.Logger, op, message string, productId int, err error) error {
	switch {
	case errors.Is(err, serviceerrors.ErrOutOfStock):
		log.Info("Requested amount exceeds stock")
	case errors.Is(err, serviceerrors.ErrNotFound):
		log.Warn("Product is not in the cart")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("Operation interrupted", sl.Err(err))
	default:
		log.Error(message, sl.Err(err))
	}

	s.notifier.Notify(context.WithoutCancel(ctx), notify.Notification{
		Level:     notify.LevelError,
		Message:   message,
		ProductId: productId,
		At:        s.now(),
	})

	return classify(op, err)
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrDeadlineExceeded)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func indexOf(cart []models.CartItem, productId int) int {
	return slices.IndexFunc(cart, func(item models.CartItem) bool {
		return item.Id == productId
	})
}
