package handler

import (
	"fmt"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/inventory"
	"github.com/fekuna/bao-console/internal/inventory/dto"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/spf13/cobra"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stock",
		Aliases: []string{"inventory"},
		Short:   "Review and adjust product stock levels",
	}
	cmd.AddCommand(h.lowCmd(), h.adjustCmd())
	return cli.Annotate(cmd, auth.ViewProducts)
}

func (h *InventoryHandler) lowCmd() *cobra.Command {
	filters := &dto.LowStockFilters{}
	cmd := &cobra.Command{
		Use:   "low",
		Short: "List products running out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := h.uc.ListLowStock(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing is running low")
				return nil
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "ID", "NAME", "CATEGORY", "QTY", "STATUS")
			for _, p := range products {
				cli.Row(w, p.ID, p.Name, p.Category, p.Quantity, p.Status())
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&filters.Threshold, "threshold", "t", 0, "list quantities below this instead of the low stock status")
	cmd.Flags().BoolVar(&filters.IncludeZero, "include-zero", false, "also list out of stock products")
	return cmd
}

func (h *InventoryHandler) adjustCmd() *cobra.Command {
	input := &dto.AdjustStockInput{}
	var set int
	cmd := &cobra.Command{
		Use:   "adjust <product-id>",
		Short: "Add or remove units, or record a stock count with --set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			input.ProductID = id
			input.Set = cli.Changed(cmd, "set", set)
			if input.Set != nil && cmd.Flags().Changed("change") {
				return apperrors.NewValidationError("Use either --change or --set")
			}
			m, err := h.uc.AdjustStock(cmd.Context(), input)
			if err != nil {
				return err
			}
			if m.Change() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already has %d units\n", m.Product.Name, m.QuantityAfter)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d (%+d, %s)\n",
				m.Product.Name, m.QuantityBefore, m.QuantityAfter, m.Change(), m.Product.Status())
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&input.Change, "change", "c", 0, "units to add, negative to remove")
	f.IntVar(&set, "set", 0, "counted quantity to record")
	f.StringVarP(&input.Reason, "reason", "r", "", "why the stock changed")
	return cmd
}
