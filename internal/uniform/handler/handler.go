package handler

import (
	"fmt"
	"strings"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cli"
	"github.com/fekuna/bao-console/internal/listing"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/fekuna/bao-console/internal/pkg/apperrors"
	prodHandler "github.com/fekuna/bao-console/internal/product/handler"
	"github.com/fekuna/bao-console/internal/uniform"
	"github.com/fekuna/bao-console/internal/uniform/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type UniformHandler struct {
	uc     uniform.UseCase
	logger logger.ZapLogger
}

func NewUniformHandler(uc uniform.UseCase, log logger.ZapLogger) *UniformHandler {
	return &UniformHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UniformHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uniforms",
		Aliases: []string{"uniform"},
		Short:   "Manage uniform sizes and variants",
	}
	cmd.AddCommand(h.listCmd(), h.byProductCmd(), h.addCmd(), h.createProductCmd(), h.deleteCmd())
	return cli.Annotate(cmd, auth.ViewUniforms)
}

func (h *UniformHandler) listCmd() *cobra.Command {
	filters := &dto.UniformFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uniform variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variants, err := h.uc.ListUniforms(cmd.Context(), filters)
			if err != nil {
				return err
			}
			printVariants(cmd, variants)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "match product, size, type or gender")
	cmd.Flags().StringVarP(&filters.Type, "type", "t", listing.All, "Standard Uniform, PE Uniform, NSTP Uniform or all")
	return cmd
}

func (h *UniformHandler) byProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-product <productId>",
		Short: "List the variants of one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			variants, err := h.uc.ListByProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			printVariants(cmd, variants)
			return nil
		},
	}
}

func (h *UniformHandler) addCmd() *cobra.Command {
	input := &dto.CreateVariantInput{}
	var productID string
	var quantity int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a variant to an existing Uniform product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(productID)
			if err != nil {
				return err
			}
			input.ProductID = id
			input.Quantity = cli.Changed(cmd, "quantity", quantity)
			v, err := h.uc.AddVariant(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created uniform #%d %s %s %s\n", v.ID, v.Type, v.Gender, v.Size)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&productID, "product", "", "Uniform product id")
	f.StringVar(&input.Size, "size", "", "XS, S, M, L, XL or XXL")
	f.StringVar(&input.Gender, "gender", "", "Male, Female or Unisex")
	f.StringVar(&input.Type, "type", "", "Standard, PE or NSTP")
	f.StringVar(&input.Piece, "piece", "", "Shirt, Pants, Polo or Skirt")
	f.StringVar(&input.Buyer, "buyer", "", "buyer note")
	f.IntVar(&quantity, "quantity", 0, "units of this variant (display only)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func (h *UniformHandler) createProductCmd() *cobra.Command {
	input := &dto.CreateUniformProductInput{}
	var price string
	var variants []string
	cmd := &cobra.Command{
		Use:   "create-product",
		Short: "Create a Uniform product together with its sizes",
		Example: `  baoctl uniforms create-product --name "PE Shirt" --price 350 --quantity 0 \
    --variant M/Male/PE/Shirt --variant S/Female/PE/Shirt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := prodHandler.ParsePrice(price)
			if err != nil {
				return err
			}
			input.Product.Price = d
			input.Variants = input.Variants[:0]
			for _, raw := range variants {
				spec, err := ParseVariantSpec(raw)
				if err != nil {
					return err
				}
				input.Variants = append(input.Variants, spec)
			}

			res, err := h.uc.CreateUniformProduct(cmd.Context(), input)
			if res != nil && res.Product != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Created product #%d %s (%s)\n", res.Product.ID, res.Product.Name, res.Product.Status())
				for _, v := range res.Variants {
					fmt.Fprintf(cmd.OutOrStdout(), "  uniform #%d %s %s %s\n", v.ID, v.Type, v.Gender, v.Size)
				}
			}
			if err != nil {
				if res != nil && res.Product != nil {
					h.logger.Warn("uniform product partially created",
						zap.Int64("product_id", res.Product.ID),
						zap.Int("variants_created", len(res.Variants)),
						zap.Int("variants_requested", len(input.Variants)),
					)
				}
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input.Product.Name, "name", "", "product name")
	f.StringVar(&price, "price", "0", "unit price")
	f.IntVar(&input.Product.Quantity, "quantity", 0, "units in stock (shared by all sizes)")
	f.StringArrayVar(&variants, "variant", nil, "size/gender/type[/piece], repeatable")
	return cmd
}

func (h *UniformHandler) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a uniform variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete uniform #%d?", id), yes)
			if err != nil || !ok {
				return err
			}
			if err := h.uc.DeleteVariant(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted uniform #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

// ParseVariantSpec reads "M/Male/PE" or "M/Male/PE/Shirt".
func ParseVariantSpec(raw string) (dto.VariantSpec, error) {
	parts := strings.Split(raw, "/")
	if len(parts) < 3 || len(parts) > 4 {
		return dto.VariantSpec{}, apperrors.NewValidationError(fmt.Sprintf("invalid variant %q, want size/gender/type[/piece]", raw))
	}
	spec := dto.VariantSpec{
		Size:   strings.TrimSpace(parts[0]),
		Gender: strings.TrimSpace(parts[1]),
		Type:   strings.TrimSpace(parts[2]),
	}
	if len(parts) == 4 {
		spec.Piece = strings.TrimSpace(parts[3])
	}
	return spec, nil
}

func printVariants(cmd *cobra.Command, variants []model.UniformVariant) {
	w := cli.NewTable(cmd.OutOrStdout())
	cli.Row(w, "ID", "PRODUCT", "TYPE", "GENDER", "SIZE", "PIECE", "QTY")
	for _, v := range variants {
		name := model.UnknownProductName
		if v.Product != nil {
			name = v.Product.Name
		}
		qty := "-"
		if v.Quantity != nil {
			qty = fmt.Sprint(*v.Quantity)
		}
		piece := string(v.Piece)
		if piece == "" {
			piece = "-"
		}
		cli.Row(w, v.ID, name, v.Type, v.Gender, v.Size, piece, qty)
	}
	_ = w.Flush()
}
