package shop

import (
	"fmt"
	"io"
	"time"

	"github.com/fekuna/bao-console/internal/model"
	"github.com/shopspring/decimal"
)

// Ticket is the confirmation of a placed order.
type Ticket struct {
	OrderCode  string
	Order      model.Order
	Item       string
	Size       model.Size
	Quantity   int
	UnitPrice  decimal.Decimal
	PickupDate time.Time
	IssuedAt   time.Time
	ReservedBy string
}

// OrderCode is BAO-<yyyymmdd>-<order id padded to 6>, dated by the order's creation time.
func OrderCode(o model.Order, fallback time.Time) string {
	day := fallback
	if t := o.CreatedAt.TimePtr(); t != nil {
		day = *t
	}
	return fmt.Sprintf("BAO-%s-%06d", day.Format("20060102"), o.ID)
}

func (t *Ticket) Render(w io.Writer) {
	fmt.Fprintln(w, "==============================")
	fmt.Fprintln(w, "  BAO ORDER CONFIRMATION")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "Order code : %s\n", t.OrderCode)
	fmt.Fprintf(w, "Item       : %s\n", t.Item)
	if t.Size != "" {
		fmt.Fprintf(w, "Size       : %s\n", t.Size)
	}
	fmt.Fprintf(w, "Quantity   : %d\n", t.Quantity)
	fmt.Fprintf(w, "Unit price : ₱%s\n", t.UnitPrice.StringFixed(2))
	fmt.Fprintf(w, "Amount     : ₱%s\n", t.Order.Amount.StringFixed(2))
	fmt.Fprintf(w, "Status     : %s\n", t.Order.Status)
	fmt.Fprintf(w, "Pickup     : %s\n", t.PickupDate.Format("Mon, 02 Jan 2006"))
	if t.ReservedBy != "" {
		fmt.Fprintf(w, "Reserved by: %s\n", t.ReservedBy)
	}
	fmt.Fprintf(w, "Issued     : %s\n", t.IssuedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w, "Present this code at the Business Affairs Office.")
}
