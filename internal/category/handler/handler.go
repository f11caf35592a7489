package handler

import (
	"fmt"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/category"
	"github.com/fekuna/bao-console/internal/category/dto"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/export"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Command() *cobra.Command {
	filters := &dto.CategoryFilters{}
	var csv bool
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Stock position per product category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := h.uc.ListCategories(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if csv {
				return export.Categories(cmd.OutOrStdout(), summaries)
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "CATEGORY", "PRODUCTS", "UNITS", "LOW", "OUT", "VALUE")
			total := decimal.Zero
			for _, s := range summaries {
				cli.Row(w, s.Category, s.Products, s.Units, s.LowStock, s.OutOfStock, "₱"+s.StockValue.StringFixed(2))
				total = total.Add(s.StockValue)
			}
			cli.Row(w, "", "", "", "", "", "₱"+total.StringFixed(2))
			if err := w.Flush(); err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products yet")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&filters.IncludeEmpty, "all", false, "include categories with no products")
	cmd.Flags().BoolVar(&csv, "csv", false, "write CSV instead of a table")
	return cli.Annotate(cmd, auth.ViewProducts)
}
