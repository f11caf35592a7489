// Package export writes manager lists as CSV.
package export

import (
	"io"

	categoryDTO "github.com/fekuna/bao-console/internal/category/dto"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type ProductRow struct {
	ID       int64  `csv:"product_id"`
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Price    string `csv:"price"`
	Quantity int    `csv:"quantity"`
	Status   string `csv:"status"`
}

type OrderRow struct {
	ID          int64  `csv:"order_id"`
	ProductID   int64  `csv:"product_id"`
	Product     string `csv:"product"`
	Status      string `csv:"status"`
	Amount      string `csv:"amount"`
	DateToClaim string `csv:"date_to_claim"`
	DateClaimed string `csv:"date_claimed"`
	CreatedAt   string `csv:"created_at"`
}

type StudentRow struct {
	ID        int64  `csv:"student_id"`
	FirstName string `csv:"firstname"`
	LastName  string `csv:"lastname"`
	College   string `csv:"college"`
	Program   string `csv:"program"`
}

func Products(w io.Writer, products []model.Product) error {
	rows := make([]*ProductRow, len(products))
	for i, p := range products {
		rows[i] = &ProductRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: string(p.Category),
			Price:    p.Price.StringFixed(2),
			Quantity: p.Quantity,
			Status:   string(p.Status()),
		}
	}
	return write(w, &rows)
}

// Orders resolves product names against products for orders whose product is not embedded.
func Orders(w io.Writer, orders []model.Order, products []model.Product) error {
	rows := make([]*OrderRow, len(orders))
	for i, o := range orders {
		rows[i] = &OrderRow{
			ID:          o.ID,
			ProductID:   o.ProductID,
			Product:     o.ProductName(products),
			Status:      string(o.Status),
			Amount:      o.Amount.StringFixed(2),
			DateToClaim: formatTime(&o.DateToClaim),
			DateClaimed: formatTime(o.DateClaimed),
			CreatedAt:   formatTime(o.CreatedAt),
		}
	}
	return write(w, &rows)
}

func Students(w io.Writer, students []model.Student) error {
	rows := make([]*StudentRow, len(students))
	for i, s := range students {
		rows[i] = &StudentRow{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, College: s.College, Program: s.Program}
	}
	return write(w, &rows)
}

type CategoryRow struct {
	Category   string `csv:"category"`
	Products   int    `csv:"products"`
	Units      int    `csv:"units"`
	LowStock   int    `csv:"low_stock"`
	OutOfStock int    `csv:"out_of_stock"`
	StockValue string `csv:"stock_value"`
}

func Categories(w io.Writer, summaries []categoryDTO.CategorySummary) error {
	rows := make([]*CategoryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = &CategoryRow{
			Category:   string(s.Category),
			Products:   s.Products,
			Units:      s.Units,
			LowStock:   s.LowStock,
			OutOfStock: s.OutOfStock,
			StockValue: s.StockValue.StringFixed(2),
		}
	}
	return write(w, &rows)
}

func write(w io.Writer, rows interface{}) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

func formatTime(ts *model.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Local().Format(model.WireTimeLayout)
}
