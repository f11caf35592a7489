package handler

import (
	"fmt"
	"os"
	"strings"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/export"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	"github.com/fekuna/bao-console/internal/product"
	"github.com/fekuna/bao-console/internal/product/dto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product inventory",
	}
	cmd.AddCommand(
		h.listCmd(),
		h.getCmd(),
		h.createCmd(),
		h.updateCmd(),
		h.deleteCmd(),
		h.uploadImageCmd(),
		h.driftCmd(),
		h.exportCmd(),
	)
	return cli.Annotate(cmd, auth.ViewProducts)
}

func (h *ProductHandler) listCmd() *cobra.Command {
	filters := &dto.ProductFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := h.uc.ListProducts(cmd.Context(), filters)
			if err != nil {
				return err
			}
			printProducts(cmd, products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "match name or category")
	cmd.Flags().StringVarP(&filters.Category, "category", "c", listing.All, "Book, Uniform, Supplies, Equipment, Other or all")
	cmd.Flags().BoolVar(&filters.InStock, "in-stock", false, "hide products with no stock")
	return cmd
}

func (h *ProductHandler) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			p, err := h.uc.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProducts(cmd, []model.Product{*p})
			return nil
		},
	}
}

func (h *ProductHandler) createCmd() *cobra.Command {
	input := &dto.CreateProductInput{}
	var price, image string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ParsePrice(price)
			if err != nil {
				return err
			}
			input.Price = d
			input.Image = cli.Changed(cmd, "image", image)
			p, err := h.uc.CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product #%d %s (%s)\n", p.ID, p.Name, p.Status())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input.Name, "name", "", "product name")
	f.StringVar(&input.Category, "category", "", "Book, Uniform, Supplies, Equipment or Other")
	f.StringVar(&price, "price", "0", "unit price")
	f.IntVar(&input.Quantity, "quantity", 0, "units in stock")
	f.StringVar(&image, "image", "", "image URL (see upload-image)")
	return cmd
}

func (h *ProductHandler) updateCmd() *cobra.Command {
	var name, category, price, image string
	var quantity int
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			input := &dto.UpdateProductInput{
				ID:       id,
				Name:     cli.Changed(cmd, "name", name),
				Category: cli.Changed(cmd, "category", category),
				Quantity: cli.Changed(cmd, "quantity", quantity),
				Image:    cli.Changed(cmd, "image", image),
			}
			if cmd.Flags().Changed("price") {
				d, err := ParsePrice(price)
				if err != nil {
					return err
				}
				input.Price = &d
			}
			p, err := h.uc.UpdateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated product #%d %s (%s)\n", p.ID, p.Name, p.Status())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "product name")
	f.StringVar(&category, "category", "", "category")
	f.StringVar(&price, "price", "", "unit price")
	f.IntVar(&quantity, "quantity", 0, "units in stock")
	f.StringVar(&image, "image", "", "image URL")
	return cmd
}

func (h *ProductHandler) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete product #%d?", id), yes)
			if err != nil || !ok {
				return err
			}
			if err := h.uc.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func (h *ProductHandler) uploadImageCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload a product image, optionally attaching it to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open image")
			}
			defer f.Close()

			url, err := h.uc.UploadImage(cmd.Context(), f.Name(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)

			if productID == "" {
				return nil
			}
			id, err := cli.ParseID(productID)
			if err != nil {
				return err
			}
			if _, err := h.uc.UpdateProduct(cmd.Context(), &dto.UpdateProductInput{ID: id, Image: &url}); err != nil {
				return err
			}
			h.logger.Info("product image attached", zap.Int64("product_id", id), zap.String("url", url))
			return nil
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product id to attach the image to")
	return cmd
}

func (h *ProductHandler) driftCmd() *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "List products whose stored status disagrees with their quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := h.uc.Drift(cmd.Context(), fix)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No drift")
				return nil
			}
			w := cli.NewTable(cmd.OutOrStdout())
			cli.Row(w, "ID", "NAME", "QTY", "STORED", "DERIVED", "FIXED")
			for _, r := range rows {
				cli.Row(w, r.Product.ID, r.Product.Name, r.Product.Quantity, r.Stored, r.Derived, r.Fixed)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "rewrite the stored status")
	return cmd
}

func (h *ProductHandler) exportCmd() *cobra.Command {
	filters := &dto.ProductFilters{}
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write products as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := h.uc.ListProducts(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return export.Products(cmd.OutOrStdout(), products)
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			defer f.Close()
			if err := export.Products(f, products); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d products to %s\n", len(products), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file path, stdout when empty")
	cmd.Flags().StringVarP(&filters.Category, "category", "c", listing.All, "only this category")
	return cmd
}

// ParsePrice accepts "350", "350.50" or "₱350.50".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₱"))
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("invalid price %q", s))
	}
	return d, nil
}

func printProducts(cmd *cobra.Command, products []model.Product) {
	w := cli.NewTable(cmd.OutOrStdout())
	cli.Row(w, "ID", "NAME", "CATEGORY", "PRICE", "QTY", "STATUS")
	for _, p := range products {
		cli.Row(w, p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Quantity, p.Status())
	}
	_ = w.Flush()
}
