package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order/dto"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type State string

const (
	StateBrowse     State = "browse"
	StateSelected   State = "selected"
	StateConfigure  State = "configure"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
)

var ErrInvalidTransition = errors.New("invalid order flow transition")

const (
	msgSelectSize        = "Please select a size"
	msgSelectDate        = "Please select a pickup date"
	msgPastDate          = "Pickup date cannot be in the past"
	msgQuantity          = "Quantity must be at least 1"
	msgInsufficientStock = "Insufficient stock"
)

// Selection is what the buyer configures before submitting.
type Selection struct {
	Size       string
	Quantity   int
	PickupDate time.Time
}

// Flow walks one purchase: browse → selected → configure → submitting → confirmed.
// A failed submit returns to configure and keeps the error. Not safe for concurrent use.
type Flow struct {
	svc    *Service
	state  State
	item   *Item
	err    error
	ticket *Ticket
}

func (f *Flow) State() State    { return f.state }
func (f *Flow) Item() *Item     { return f.item }
func (f *Flow) Err() error      { return f.err }
func (f *Flow) Ticket() *Ticket { return f.ticket }

// Select picks a catalog item. Allowed while browsing or to change an earlier pick.
func (f *Flow) Select(it Item) error {
	switch f.state {
	case StateBrowse, StateSelected, StateConfigure:
	default:
		return errors.Wrapf(ErrInvalidTransition, "select from %s", f.state)
	}
	f.item = &it
	f.err = nil
	f.state = StateSelected
	return nil
}

func (f *Flow) Configure() error {
	if f.state != StateSelected {
		return errors.Wrapf(ErrInvalidTransition, "configure from %s", f.state)
	}
	f.state = StateConfigure
	return nil
}

// Reset returns to browsing, dropping the selection and any ticket.
func (f *Flow) Reset() {
	f.state = StateBrowse
	f.item = nil
	f.err = nil
	f.ticket = nil
}

// Submit validates sel locally, checks the freshly fetched stock and places the order.
// Validation failures send nothing. Stock is re-checked by the server, not reserved here.
func (f *Flow) Submit(ctx context.Context, sel Selection) (*Ticket, error) {
	if f.state != StateConfigure {
		return nil, errors.Wrapf(ErrInvalidTransition, "submit from %s", f.state)
	}
	productID, size, err := f.validate(sel)
	if err != nil {
		f.err = err
		return nil, err
	}

	f.state = StateSubmitting
	t, err := f.place(ctx, productID, size, sel)
	if err != nil {
		f.state = StateConfigure
		f.err = err
		return nil, err
	}
	f.state = StateConfirmed
	f.err = nil
	f.ticket = t
	return t, nil
}

func (f *Flow) validate(sel Selection) (int64, model.Size, error) {
	var productID int64
	var size model.Size
	if f.item.IsUniform() {
		if sel.Size == "" {
			return 0, "", apperrors.NewValidationError(msgSelectSize)
		}
		s, ok := model.ParseSize(sel.Size)
		if !ok {
			return 0, "", apperrors.NewValidationError(fmt.Sprintf("Unknown size %q", sel.Size))
		}
		v, ok := f.item.Group.Variant(s)
		if !ok {
			return 0, "", apperrors.NewValidationError(fmt.Sprintf("Size %s is not available", s))
		}
		productID, size = v.ProductID, s
	} else {
		productID = f.item.Product.ID
	}

	if sel.Quantity < 1 {
		return 0, "", apperrors.NewValidationError(msgQuantity)
	}
	if sel.PickupDate.IsZero() {
		return 0, "", apperrors.NewValidationError(msgSelectDate)
	}
	now := f.svc.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if sel.PickupDate.Before(today) {
		return 0, "", apperrors.NewValidationError(msgPastDate)
	}
	return productID, size, nil
}

func (f *Flow) place(ctx context.Context, productID int64, size model.Size, sel Selection) (*Ticket, error) {
	p, err := f.svc.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check stock")
	}
	if p.Quantity < sel.Quantity {
		return nil, apperrors.NewValidationError(msgInsufficientStock)
	}

	o, err := f.svc.orders.CreateOrder(ctx, &dto.CreateOrderInput{
		ProductID:   productID,
		Quantity:    sel.Quantity,
		DateToClaim: sel.PickupDate,
	})
	if err != nil {
		return nil, err
	}

	now := f.svc.now()
	t := &Ticket{
		OrderCode:  OrderCode(*o, now),
		Order:      *o,
		Item:       f.item.Name(),
		Size:       size,
		Quantity:   sel.Quantity,
		UnitPrice:  p.Price,
		PickupDate: sel.PickupDate,
		IssuedAt:   now,
	}
	if !f.item.IsUniform() {
		t.Item = p.Name
	}
	if u := auth.UserFromContext(ctx); u != nil {
		t.ReservedBy = u.DisplayName()
	}
	f.svc.logger.Info("order placed",
		zap.String("order_code", t.OrderCode),
		zap.Int64("order_id", o.ID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", sel.Quantity),
		zap.Int64("student_id", auth.GetEntityID(ctx)),
	)
	return t, nil
}
