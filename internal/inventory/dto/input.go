package dto

type AdjustStockInput struct {
	ProductID int64
	// Change is added to the current quantity; negative values remove stock.
	Change int
	// Set replaces the quantity when non-nil (a stock count); Change is ignored.
	Set    *int
	Reason string
}
