// Package cart owns a client's cart: line items, the applied coupon, the
// totals derived from them and their persistence to a key-value slot.
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// CouponPolicy decides whether the applied coupon survives a restart.
type CouponPolicy string

const (
	// CouponInMemory keeps the applied coupon for the current session only.
	CouponInMemory CouponPolicy = "memory"
	// CouponInSlot stores the applied code next to the line items.
	CouponInSlot CouponPolicy = "slot"
)

// CouponFailure names why a coupon could not be applied.
type CouponFailure string

const (
	CouponNotFound      CouponFailure = "coupon_not_found"
	CouponMinimumNotMet CouponFailure = "coupon_minimum_not_met"
)

// CouponResult is the outcome of ApplyCoupon. Failures are values, not errors;
// the caller decides how to show Message.
type CouponResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Reason  CouponFailure  `json:"reason,omitempty"`
	Coupon  *domain.Coupon `json:"coupon,omitempty"`
}

// Slot is the durable key-value storage a cart persists into.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Recorder receives cart activity for metrics.
type Recorder interface {
	Mutation(op string)
	CouponApplied(code string)
	CouponRejected(reason CouponFailure)
	CouponDetached(code string)
	PersistFailed(op string)
}

type couponLookup interface {
	Lookup(code string) (domain.Coupon, bool)
}

// Options configures a Store.
type Options struct {
	Coupons        couponLookup
	Slot           Slot
	CouponPolicy   CouponPolicy
	CurrencySymbol string
	Logger         zerolog.Logger
	Recorder       Recorder
}

// Snapshot is a consistent view of the cart after the latest mutation.
type Snapshot struct {
	Items         []domain.LineItem `json:"items"`
	AppliedCoupon *domain.Coupon    `json:"appliedCoupon"`
	Totals
}

// Store is the sole mutator of one cart. It is safe for concurrent use,
// although a cart normally sees one caller at a time.
type Store struct {
	mu     sync.Mutex
	key    string
	lines  []domain.LineItem
	coupon *domain.Coupon
	subs   []func(Snapshot)

	coupons  couponLookup
	slot     Slot
	policy   CouponPolicy
	currency string
	log      zerolog.Logger
	rec      Recorder
}

// Open builds a Store for key and rehydrates it from the slot. Unreadable or
// corrupt state yields an empty cart; Open itself never fails on storage.
func Open(ctx context.Context, key string, opts Options) *Store {
	s := &Store{
		key:      key,
		coupons:  opts.Coupons,
		slot:     opts.Slot,
		policy:   opts.CouponPolicy,
		currency: opts.CurrencySymbol,
		log:      opts.Logger.With().Str("cart", key).Logger(),
		rec:      opts.Recorder,
	}
	if s.policy == "" {
		s.policy = CouponInMemory
	}
	if s.currency == "" {
		s.currency = "₹"
	}
	if s.rec == nil {
		s.rec = nopRecorder{}
	}
	s.load(ctx)
	return s
}

// CouponKey is the slot key holding the applied code for the cart at key.
// Codes live under their own prefix so no cart key can collide with one.
func CouponKey(key string) string {
	return "coupon:" + strings.TrimPrefix(key, "cart:")
}

func (s *Store) load(ctx context.Context) {
	if s.slot == nil {
		return
	}
	raw, err := s.slot.Get(ctx, s.key)
	switch {
	case errors.Is(err, cartrepo.ErrEmpty):
	case err != nil:
		s.log.Warn().Err(err).Msg("cart load failed, starting empty")
	default:
		lines, err := Decode(raw)
		if err != nil {
			s.log.Warn().Err(err).Msg("stored cart unreadable, starting empty")
		} else {
			s.lines = lines
		}
	}

	if s.policy != CouponInSlot {
		return
	}
	code, err := s.slot.Get(ctx, CouponKey(s.key))
	if err != nil {
		if !errors.Is(err, cartrepo.ErrEmpty) {
			s.log.Warn().Err(err).Msg("coupon load failed")
		}
		return
	}
	c, ok := s.lookup(string(code))
	if !ok || !c.MinimumMet(Price(s.lines, nil).Subtotal) {
		s.log.Info().Str("coupon", string(code)).Msg("stored coupon no longer valid, dropped")
		s.persistCoupon(ctx)
		return
	}
	s.coupon = &c
}

// AddItem adds one unit of product in size. An existing line for the same
// product and size is incremented; otherwise a new line snapshots the
// product's current price, title, images and category.
func (s *Store) AddItem(ctx context.Context, product domain.Product, size string) error {
	size = strings.TrimSpace(size)
	if strings.TrimSpace(product.ID) == "" {
		return fmt.Errorf("product id required: %w", domain.ErrInvalidInput)
	}
	if size == "" {
		return fmt.Errorf("size required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].Matches(product.ID, size) {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		images := make([]string, len(product.Images))
		copy(images, product.Images)
		s.lines = append(s.lines, domain.LineItem{
			ProductID:    product.ID,
			Title:        product.Title,
			Price:        product.Price,
			Category:     product.Category,
			Images:       images,
			SelectedSize: size,
			Quantity:     1,
		})
	}
	snap := s.commit(ctx, "add_item", true, false)
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// RemoveItem drops the line for productID and size. Absent lines are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID, size string) {
	s.mu.Lock()
	idx := s.indexOf(productID, size)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	snap := s.commit(ctx, "remove_item", true, false)
	s.mu.Unlock()

	s.notify(snap)
}

// UpdateQuantity shifts a line's quantity by delta, never below 1. Removal
// only happens through RemoveItem. Absent lines are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID, size string, delta int) {
	s.mu.Lock()
	idx := s.indexOf(productID, size)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.lines[idx].Quantity = shiftQuantity(s.lines[idx].Quantity, delta)
	snap := s.commit(ctx, "update_quantity", true, false)
	s.mu.Unlock()

	s.notify(snap)
}

// shiftQuantity adds delta to q, saturating at math.MaxInt and never going
// below 1.
func shiftQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(1, q+delta)
}

// Clear empties the cart and removes the applied coupon.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	couponChanged := s.coupon != nil
	s.lines = nil
	s.coupon = nil
	snap := s.commit(ctx, "clear", true, couponChanged)
	s.mu.Unlock()

	s.notify(snap)
}

// Drain returns the cart as it stood and empties it in one step, so nothing
// added concurrently is cleared without being returned. An empty cart is
// left untouched.
func (s *Store) Drain(ctx context.Context) Snapshot {
	s.mu.Lock()
	taken := s.snapshotLocked()
	if len(s.lines) == 0 && s.coupon == nil {
		s.mu.Unlock()
		return taken
	}
	couponChanged := s.coupon != nil
	s.lines = nil
	s.coupon = nil
	snap := s.commit(ctx, "clear", true, couponChanged)
	s.mu.Unlock()

	s.notify(snap)
	return taken
}

// ApplyCoupon attaches the coupon matching code. A missing code or an unmet
// minimum leaves the cart untouched and is reported in the result.
func (s *Store) ApplyCoupon(ctx context.Context, code string) CouponResult {
	s.mu.Lock()
	c, ok := s.lookup(code)
	if !ok {
		s.mu.Unlock()
		s.rec.CouponRejected(CouponNotFound)
		return CouponResult{Message: "Invalid coupon code.", Reason: CouponNotFound}
	}
	subtotal := Price(s.lines, nil).Subtotal
	if !c.MinimumMet(subtotal) {
		s.mu.Unlock()
		s.rec.CouponRejected(CouponMinimumNotMet)
		return CouponResult{
			Message: fmt.Sprintf("Minimum order of %s%s required.", s.currency, c.MinOrderValue.String()),
			Reason:  CouponMinimumNotMet,
		}
	}
	s.coupon = &c
	snap := s.commit(ctx, "apply_coupon", false, true)
	s.mu.Unlock()

	s.rec.CouponApplied(c.Code)
	s.notify(snap)
	applied := c
	return CouponResult{
		Success: true,
		Message: fmt.Sprintf("Coupon '%s' applied!", c.Code),
		Coupon:  &applied,
	}
}

// RemoveCoupon clears the applied coupon unconditionally.
func (s *Store) RemoveCoupon(ctx context.Context) {
	s.mu.Lock()
	changed := s.coupon != nil
	s.coupon = nil
	snap := s.commit(ctx, "remove_coupon", false, changed)
	s.mu.Unlock()

	s.notify(snap)
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// AppliedCoupon returns the applied coupon or nil.
func (s *Store) AppliedCoupon() *domain.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// Totals derives subtotal, discount, total and item count from current state.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Price(s.lines, s.coupon)
}

// Subtotal is the sum of unit price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal { return s.Totals().Subtotal }

// Discount is the amount the applied coupon currently takes off.
func (s *Store) Discount() decimal.Decimal { return s.Totals().Discount }

// Total is subtotal minus discount, floored at zero.
func (s *Store) Total() decimal.Decimal { return s.Totals().Total }

// ItemCount is the sum of quantities, as shown on the cart badge.
func (s *Store) ItemCount() int { return s.Totals().ItemCount }

// Snapshot returns lines, coupon and totals read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// commit runs after every mutation with s.mu held: it detaches a coupon whose
// minimum is no longer met, persists what changed and returns the snapshot
// subscribers should see.
func (s *Store) commit(ctx context.Context, op string, linesChanged, couponChanged bool) Snapshot {
	s.rec.Mutation(op)

	if linesChanged && s.coupon != nil {
		subtotal := Price(s.lines, nil).Subtotal
		if !s.coupon.MinimumMet(subtotal) {
			code := s.coupon.Code
			s.coupon = nil
			couponChanged = true
			s.log.Info().Str("coupon", code).Str("subtotal", subtotal.String()).Msg("coupon minimum no longer met, detached")
			s.rec.CouponDetached(code)
		}
	}

	if linesChanged {
		s.persistLines(ctx)
	}
	if couponChanged {
		s.persistCoupon(ctx)
	}
	return s.snapshotLocked()
}

func (s *Store) persistLines(ctx context.Context) {
	if s.slot == nil {
		return
	}
	data, err := Encode(s.lines)
	if err == nil {
		err = s.slot.Put(ctx, s.key, data)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("cart persist failed")
		s.rec.PersistFailed("lines")
	}
}

func (s *Store) persistCoupon(ctx context.Context) {
	if s.slot == nil || s.policy != CouponInSlot {
		return
	}
	var err error
	if s.coupon == nil {
		err = s.slot.Delete(ctx, CouponKey(s.key))
	} else {
		err = s.slot.Put(ctx, CouponKey(s.key), []byte(s.coupon.Code))
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("coupon persist failed")
		s.rec.PersistFailed("coupon")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Items:  copyLines(s.lines),
		Totals: Price(s.lines, s.coupon),
	}
	if s.coupon != nil {
		c := *s.coupon
		snap.AppliedCoupon = &c
	}
	return snap
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) lookup(code string) (domain.Coupon, bool) {
	if s.coupons == nil {
		return domain.Coupon{}, false
	}
	return s.coupons.Lookup(code)
}

func (s *Store) indexOf(productID, size string) int {
	size = strings.TrimSpace(size)
	for i := range s.lines {
		if s.lines[i].Matches(productID, size) {
			return i
		}
	}
	return -1
}

func copyLines(lines []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	for i, l := range lines {
		out[i] = l
		if l.Images != nil {
			out[i].Images = make([]string, len(l.Images))
			copy(out[i].Images, l.Images)
		}
	}
	return out
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string)              {}
func (nopRecorder) CouponApplied(string)         {}
func (nopRecorder) CouponRejected(CouponFailure) {}
func (nopRecorder) CouponDetached(string)        {}
func (nopRecorder) PersistFailed(string)         {}
