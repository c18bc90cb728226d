package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"food-order/internal/common/apperr"
	"food-order/internal/common/events"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	"food-order/internal/common/simulate"
	"food-order/internal/common/validate"
	cart "food-order/internal/microservices/cart/models"
	"food-order/internal/microservices/catalog/pricing"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/order/domain/dao"
	dto "food-order/internal/microservices/order/domain/dto"
	"food-order/internal/microservices/order/repository"
	wallet "food-order/internal/microservices/wallet/models"
	walletsvc "food-order/internal/microservices/wallet/service"
)

const deliveryWindow = 45 * time.Minute

var ErrEmptyCart = apperr.New(apperr.KindRule, "empty_cart", "Your cart is empty")

// Cart is the part of the cart service checkout needs.
type Cart interface {
	Get(ctx context.Context, owner cart.Owner) (cart.Cart, error)
	RemoveOrdered(ctx context.Context, owner cart.Owner, lines []cart.Line) error
}

// Wallet is the part of the wallet service checkout needs.
type Wallet interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Pay(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (wallet.Transaction, error)
	Refund(ctx context.Context, userID string, amount decimal.Decimal, orderID string) (wallet.Transaction, error)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, user identity.Session, req dto.CheckoutRequest) (dao.Order, error)
	ListOrders(ctx context.Context, userID string) ([]dao.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (dao.Order, error)
}

type OrderService struct {
	db           repository.OrderRepositoryInterface
	cart         Cart
	wallet       Wallet
	pub          events.Publisher
	paymentDelay time.Duration
	now          func() time.Time
	lg           *logger.Logger
}

func NewOrderService(db repository.OrderRepositoryInterface, c Cart, w Wallet, pub events.Publisher, paymentDelay time.Duration) *OrderService {
	if pub == nil {
		pub = events.Discard{}
	}
	return &OrderService{
		db:           db,
		cart:         c,
		wallet:       w,
		pub:          pub,
		paymentDelay: paymentDelay,
		now:          func() time.Time { return time.Now().UTC() },
		lg:           logger.New("order"),
	}
}

func (or *OrderService) PlaceOrder(ctx context.Context, user identity.Session, req dto.CheckoutRequest) (dao.Order, error) {
	lg := logger.FromContext(ctx, or.lg)

	// 1. Validation, before anything changes
	if err := validateCheckout(&req); err != nil {
		return dao.Order{}, err
	}
	owner := cart.UserOwner(user.ID)
	c, err := or.cart.Get(ctx, owner)
	if err != nil {
		return dao.Order{}, err
	}
	if len(c.Lines) == 0 {
		return dao.Order{}, ErrEmptyCart
	}

	// 2. Snapshot the cart at current prices
	items := make([]dao.OrderItem, 0, len(c.Lines))
	total := decimal.Zero
	for _, l := range c.Lines {
		it := dao.OrderItem{
			ItemID:     l.ItemID,
			Name:       l.Name,
			Thumbnail:  l.Thumbnail,
			Price:      pricing.Price(l.Name),
			Quantity:   l.Quantity,
			Restaurant: l.Restaurant,
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, it)
	}
	total = total.Round(2)

	if req.PaymentMethod == dao.PaymentWallet {
		bal, err := or.wallet.Balance(ctx, user.ID)
		if err != nil {
			return dao.Order{}, err
		}
		if bal.LessThan(total) {
			return dao.Order{}, walletsvc.ErrInsufficientBalance
		}
	}

	// 3. Payment processing
	if err := simulate.Delay(ctx, or.paymentDelay); err != nil {
		return dao.Order{}, err
	}
	orderID := ids.Prefixed("ORDER")
	paid := false
	if req.PaymentMethod == dao.PaymentWallet {
		if _, err := or.wallet.Pay(ctx, user.ID, total, orderID); err != nil {
			return dao.Order{}, err
		}
		paid = true
	}

	// 4. Save order
	now := or.now()
	order := dao.Order{
		ID:                orderID,
		UserID:            user.ID,
		Items:             items,
		Total:             total,
		DeliveryAddress:   req.DeliveryAddress,
		Phone:             req.Phone,
		Instructions:      req.Instructions,
		PaymentMethod:     req.PaymentMethod,
		Status:            dao.StatusConfirmed,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
	}
	if err := or.db.AddOrder(ctx, order); err != nil {
		lg.Error("order_save_failed", err, map[string]any{"order_id": orderID})
		if paid {
			// the caller may already be gone; the refund must still land
			rctx := context.WithoutCancel(ctx)
			if _, rerr := or.wallet.Refund(rctx, user.ID, total, orderID); rerr != nil {
				lg.Error("order_refund_failed", rerr, map[string]any{"order_id": orderID, "amount": total.StringFixed(2)})
			}
		}
		return dao.Order{}, err
	}

	// 5. Take the ordered lines out of the cart and announce
	if err := or.cart.RemoveOrdered(ctx, owner, c.Lines); err != nil {
		lg.Error("cart_clear_failed", err, map[string]any{"order_id": orderID})
	}
	lg.Info("order_placed", map[string]any{
		"order_id": orderID, "total": total.StringFixed(2), "payment_method": req.PaymentMethod,
	})
	events.Emit(ctx, or.pub, or.lg, events.OrderPlaced, dao.OrderMessage{
		OrderID:       order.ID,
		UserID:        order.UserID,
		ItemCount:     c.ItemCount,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	})
	return order, nil
}

func validateCheckout(req *dto.CheckoutRequest) error {
	req.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Instructions = strings.TrimSpace(req.Instructions)
	if err := validate.Struct(*req); err != nil {
		return err
	}
	fields := map[string]string{}
	if len(digits(req.Phone)) != 10 {
		fields["phone"] = "Please enter a valid 10-digit phone number"
	}
	if req.PaymentMethod == dao.PaymentCard {
		card := strings.Join(strings.Fields(req.CardNumber), "")
		switch {
		case card == "":
			fields["card_number"] = "Card number is required"
		case len(card) != 16 || len(digits(card)) != 16:
			fields["card_number"] = "Please enter a valid 16-digit card number"
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
}

func (or *OrderService) ListOrders(ctx context.Context, userID string) ([]dao.Order, error) {
	return or.db.ListByUser(ctx, userID)
}

// GetOrder only returns orders owned by userID.
func (or *OrderService) GetOrder(ctx context.Context, userID, orderID string) (dao.Order, error) {
	o, found, err := or.db.GetOrder(ctx, orderID)
	if err != nil {
		return dao.Order{}, err
	}
	if !found || o.UserID != userID {
		return dao.Order{}, apperr.NotFound("order")
	}
	return o, nil
}
