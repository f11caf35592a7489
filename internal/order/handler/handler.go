package handler

import (
	"fmt"
	"os"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/export"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/order"
	"github.com/fekuna/bao-console/internal/order/dto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Manage reservations",
	}
	cmd.AddCommand(h.listCmd(), h.getCmd(), h.createCmd(), h.updateCmd(), h.deleteCmd(), h.exportCmd())
	return cli.Annotate(cmd, auth.ViewOrders)
}

func (h *OrderHandler) listCmd() *cobra.Command {
	filters := &dto.OrderFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := h.uc.ListOrders(cmd.Context(), filters)
			if err != nil {
				return err
			}
			printOrders(cmd, orders)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "match order id, product or status")
	cmd.Flags().StringVar(&filters.Status, "status", listing.All, "pending, processing, ready, claimed, cancelled or all")
	return cmd
}

func (h *OrderHandler) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			o, err := h.uc.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrders(cmd, []model.Order{*o})
			return nil
		},
	}
}

func (h *OrderHandler) createCmd() *cobra.Command {
	input := &dto.CreateOrderInput{}
	var productID, date string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Reserve a product for pickup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(productID)
			if err != nil {
				return err
			}
			input.ProductID = id
			if date != "" {
				ts, err := model.ParseTimestamp(date)
				if err != nil {
					return err
				}
				input.DateToClaim = ts.Time
			}
			o, err := h.uc.CreateOrder(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created order #%d %s x%d = %s (%s)\n",
				o.ID, o.ProductName(nil), input.Quantity, o.Amount.StringFixed(2), o.Status)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&productID, "product", "", "product id")
	f.IntVar(&input.Quantity, "quantity", 1, "units")
	f.StringVar(&date, "date", "", "pickup date, e.g. 2025-06-01 or 06/01/2025 14:00")
	f.StringVar(&input.Status, "status", "", "initial status (default pending)")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func (h *OrderHandler) updateCmd() *cobra.Command {
	var status, claimed string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an order's status or claimed date",
		Example: `  baoctl orders update 12 --status claimed
  baoctl orders update 12 --claimed "2025-06-02 10:30"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			input := &dto.UpdateOrderInput{ID: id, Status: cli.Changed(cmd, "status", status)}
			if cmd.Flags().Changed("claimed") {
				ts, err := model.ParseTimestamp(claimed)
				if err != nil {
					return err
				}
				t := ts.Time
				input.DateClaimed = &t
			}
			o, err := h.uc.UpdateOrder(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated order #%d (%s, claimed %s)\n", o.ID, o.Status, cli.FormatDate(o.DateClaimed))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&claimed, "claimed", "", "claimed date")
	return cmd
}

func (h *OrderHandler) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete order #%d?", id), yes)
			if err != nil || !ok {
				return err
			}
			if err := h.uc.DeleteOrder(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted order #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func (h *OrderHandler) exportCmd() *cobra.Command {
	filters := &dto.OrderFilters{}
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write orders as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := h.uc.ListOrders(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return export.Orders(cmd.OutOrStdout(), orders, nil)
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			defer f.Close()
			if err := export.Orders(f, orders, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d orders to %s\n", len(orders), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file path, stdout when empty")
	cmd.Flags().StringVar(&filters.Status, "status", listing.All, "only this status")
	return cmd
}

func printOrders(cmd *cobra.Command, orders []model.Order) {
	w := cli.NewTable(cmd.OutOrStdout())
	cli.Row(w, "ID", "PRODUCT", "STATUS", "AMOUNT", "PICKUP", "CLAIMED", "CREATED")
	for _, o := range orders {
		pickup := o.DateToClaim
		cli.Row(w, o.ID, o.ProductName(nil), o.Status, o.Amount.StringFixed(2),
			cli.FormatDate(&pickup), cli.FormatDate(o.DateClaimed), cli.FormatDate(o.CreatedAt))
	}
	_ = w.Flush()
}
