package handler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/dashboard"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	svc         *dashboard.Service
	refreshSpec string
	logger      logger.ZapLogger
}

// NewDashboardHandler takes the default --watch schedule (a cron spec such as "@every 30s").
func NewDashboardHandler(svc *dashboard.Service, refreshSpec string, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		svc:         svc,
		refreshSpec: refreshSpec,
		logger:      log,
	}
}

func (h *DashboardHandler) Command() *cobra.Command {
	var periodFlag string
	var watch bool
	var spec string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show inventory, order and revenue summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := dashboard.ParsePeriod(periodFlag)
			if err != nil {
				return err
			}
			if !watch {
				return h.render(cmd.Context(), cmd.OutOrStdout(), period)
			}
			return h.watch(cmd.Context(), cmd.OutOrStdout(), period, spec)
		},
	}
	cmd.Flags().StringVarP(&periodFlag, "period", "p", string(dashboard.PeriodAll), "revenue window: today, week, month, year or all")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render on a schedule until interrupted")
	cmd.Flags().StringVar(&spec, "every", h.refreshSpec, "cron spec used with --watch")
	return cli.Annotate(cmd, auth.ViewDashboard)
}

func (h *DashboardHandler) render(ctx context.Context, out io.Writer, period dashboard.Period) error {
	sum, err := h.svc.Summary(ctx, period)
	if err != nil {
		return err
	}
	Render(out, sum)
	return nil
}

func (h *DashboardHandler) watch(ctx context.Context, out io.Writer, period dashboard.Period, spec string) error {
	if err := h.render(ctx, out, period); err != nil {
		return err
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		fmt.Fprintln(out)
		if err := h.refresh(ctx, out, period); err != nil {
			h.logger.Warn("dashboard refresh failed", zap.Error(err))
			fmt.Fprintf(out, "refresh failed: %v\n", err)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "invalid refresh schedule %q", spec)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// refresh is one watch tick: drop the cached lists, then recompute and render.
func (h *DashboardHandler) refresh(ctx context.Context, out io.Writer, period dashboard.Period) error {
	if err := h.svc.Reload(ctx); err != nil {
		h.logger.Warn("dashboard cache reload failed", zap.Error(err))
	}
	return h.render(ctx, out, period)
}

// Render writes the summary as plain text.
func Render(out io.Writer, s *dashboard.Summary) {
	fmt.Fprintf(out, "BAO dashboard  (%s, %s)\n\n", s.Period, s.GeneratedAt.Format("2006-01-02 15:04"))

	w := cli.NewTable(out)
	cli.Row(w, "Products", s.Products)
	cli.Row(w, "Units in stock", s.UnitsInStock)
	cli.Row(w, "Low stock", s.LowStock)
	cli.Row(w, "Students", s.Students)
	cli.Row(w, "Pending orders", s.PendingOrders)
	cli.Row(w, "Claimed orders", s.ClaimedOrders)
	cli.Row(w, "Revenue", "₱"+s.Revenue.StringFixed(2))
	cli.Row(w, "Average order", "₱"+s.AverageOrder.StringFixed(2))
	_ = w.Flush()

	fmt.Fprintln(out, "\nRecent orders")
	if len(s.RecentOrders) == 0 {
		fmt.Fprintln(out, "  none")
	} else {
		w = cli.NewTable(out)
		for _, o := range s.RecentOrders {
			cli.Row(w, fmt.Sprintf("  #%d", o.ID), o.ProductName(nil), o.Status, "₱"+o.Amount.StringFixed(2), cli.FormatDate(o.CreatedAt))
		}
		_ = w.Flush()
	}

	fmt.Fprintln(out, "\nRecent activity")
	if len(s.Activity) == 0 {
		fmt.Fprintln(out, "  none")
		return
	}
	for _, e := range s.Activity {
		fmt.Fprintf(out, "  [%s] %s  %s\n", strings.ToUpper(string(e.Kind)), e.At.Format("15:04:05"), e.Description)
	}
}
