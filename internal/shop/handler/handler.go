package handler

import (
	"fmt"
	"strings"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/shop"
	"github.com/spf13/cobra"
)

type ShopHandler struct {
	svc    *shop.Service
	logger logger.ZapLogger
}

func NewShopHandler(svc *shop.Service, log logger.ZapLogger) *ShopHandler {
	return &ShopHandler{
		svc:    svc,
		logger: log,
	}
}

func (h *ShopHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse in-stock items and place an order",
	}
	cmd.AddCommand(h.catalogCmd(), h.orderCmd())
	return cli.Annotate(cmd, auth.ViewShop)
}

func (h *ShopHandler) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"browse"},
		Short:   "List what can be ordered",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := h.svc.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing in stock")
				return nil
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "KEY", "ITEM", "PRICE", "STOCK", "SIZES")
			for _, it := range items {
				sizes := "-"
				if it.IsUniform() {
					sizes = joinSizes(it.Group.Sizes())
				}
				cli.Row(w, it.Key(), it.Name(), "₱"+it.Price().StringFixed(2), it.Stock(), sizes)
			}
			return w.Flush()
		},
	}
}

func (h *ShopHandler) orderCmd() *cobra.Command {
	var size, date string
	var quantity int
	cmd := &cobra.Command{
		Use:   "order <key>",
		Short: "Order a catalog item for pickup",
		Example: `  baoctl shop order 12 --quantity 2 --date 2025-06-10
  baoctl shop order pe-female --size M --date 06/12/2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := h.svc.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			it, ok := shop.Find(items, args[0])
			if !ok {
				return apperrors.NewValidationError(fmt.Sprintf("No in-stock item %q; see `shop catalog`", args[0]))
			}

			sel := shop.Selection{Size: size, Quantity: quantity}
			if date != "" {
				ts, err := model.ParseTimestamp(date)
				if err != nil {
					return err
				}
				sel.PickupDate = ts.Time
			}

			flow := h.svc.NewFlow()
			if err := flow.Select(it); err != nil {
				return err
			}
			if err := flow.Configure(); err != nil {
				return err
			}
			ticket, err := flow.Submit(cmd.Context(), sel)
			if err != nil {
				return err
			}
			ticket.Render(cmd.OutOrStdout())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&size, "size", "", "size for uniform items (XS..XXL)")
	f.IntVarP(&quantity, "quantity", "q", 1, "units")
	f.StringVar(&date, "date", "", "pickup date")
	return cmd
}

func joinSizes(sizes []model.Size) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
