package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

const (
	sendURL   = "https://api.whatsapp.com/send"
	separator = "------------------"
)

// ErrEmptyCart is returned when handing off a cart without lines.
var ErrEmptyCart = fmt.Errorf("cart is empty: %w", domain.ErrInvalidInput)

// Cart is the part of a cart store the hand-off needs.
type Cart interface {
	Drain(ctx context.Context) cart.Snapshot
}

type pointsAwarder interface {
	AddPoints(ctx context.Context, id string, amount int) (*domain.Customer, error)
}

type Config struct {
	WhatsAppNumber string
	CurrencySymbol string
	// PointsPer is the order value that earns one loyalty point. Zero
	// disables awarding.
	PointsPer decimal.Decimal
}

// Service turns a cart into a WhatsApp order request. Nothing is stored;
// the shop confirms availability and payment in the chat.
type Service struct {
	number   string
	currency string
	per      decimal.Decimal
	points   pointsAwarder
	logger   zerolog.Logger
}

// New returns a checkout Service. points may be nil.
func New(cfg Config, points pointsAwarder, logger zerolog.Logger) *Service {
	currency := cfg.CurrencySymbol
	if currency == "" {
		currency = "₹"
	}
	return &Service{
		number:   cfg.WhatsAppNumber,
		currency: currency,
		per:      cfg.PointsPer,
		points:   points,
		logger:   logger,
	}
}

// Order is the result of a hand-off.
type Order struct {
	Message      string      `json:"message"`
	URL          string      `json:"url"`
	Totals       cart.Totals `json:"totals"`
	PointsEarned int         `json:"pointsEarned"`
}

// Message formats the plain-text order summary for c and snap.
func (s *Service) Message(c domain.Customer, snap cart.Snapshot) string {
	var b strings.Builder
	b.WriteString("*NEW ORDER REQUEST* 🛒\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "*Customer:* %s\n", c.Name)
	fmt.Fprintf(&b, "*Phone:* %s\n", c.PhoneNumber)
	fmt.Fprintf(&b, "*Address:* %s\n", c.FullAddress())
	b.WriteString("\n*Order Details:*\n")

	for _, l := range snap.Items {
		fmt.Fprintf(&b, "\n• %s (Size: %s) x %d - %s", l.Title, l.SelectedSize, l.Quantity, s.money(l.LineTotal()))
	}

	b.WriteString("\n" + separator)
	if snap.AppliedCoupon != nil {
		fmt.Fprintf(&b, "\nSubtotal: %s", s.money(snap.Subtotal))
		fmt.Fprintf(&b, "\nDiscount (%s): -%s", snap.AppliedCoupon.Code, s.money(snap.Discount))
	}
	fmt.Fprintf(&b, "\n*TOTAL PAYABLE: %s*", s.money(snap.Total))
	b.WriteString("\n" + separator)
	b.WriteString("\nPlease confirm availability and payment details.")
	return b.String()
}

// Link builds the click-to-chat URL carrying message.
func (s *Service) Link(message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return sendURL + "?phone=" + url.QueryEscape(s.number) + "&text=" + text
}

// HandOff empties store into an order request and credits loyalty points.
// A failure to credit points is logged, not returned.
func (s *Service) HandOff(ctx context.Context, c domain.Customer, store Cart) (Order, error) {
	if strings.TrimSpace(c.PhoneNumber) == "" || c.FullAddress() == "" {
		return Order{}, fmt.Errorf("customer %s has no phone or address: %w", c.ID, domain.ErrInvalidInput)
	}
	snap := store.Drain(ctx)
	if len(snap.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	msg := s.Message(c, snap)
	order := Order{
		Message: msg,
		URL:     s.Link(msg),
		Totals:  snap.Totals,
	}

	if earned := s.pointsFor(snap.Total); earned > 0 && s.points != nil {
		if _, err := s.points.AddPoints(ctx, c.ID, earned); err != nil {
			s.logger.Warn().Err(err).Str("customer_id", c.ID).Int("points", earned).Msg("award points failed")
		} else {
			order.PointsEarned = earned
		}
	}

	s.logger.Info().
		Str("customer_id", c.ID).
		Int("items", snap.ItemCount).
		Str("total", snap.Total.String()).
		Msg("order handed off")
	return order, nil
}

func (s *Service) pointsFor(total decimal.Decimal) int {
	if !s.per.IsPositive() {
		return 0
	}
	return int(total.Div(s.per).Floor().IntPart())
}

func (s *Service) money(d decimal.Decimal) string {
	return s.currency + d.String()
}
