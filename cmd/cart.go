package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sainath-666/storefront/internal/storefront"
)

func newCartCommand(svc *services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the session cart",
	}
	cmd.AddCommand(
		newCartShowCommand(svc),
		newCartAddCommand(svc),
		newCartUpdateCommand(svc),
		newCartRemoveCommand(svc),
		newCartClearCommand(svc),
	)
	return cmd
}

func newCartShowCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart items with product details",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCartShow")
			c = logger.WithContext(c)

			view := storefront.NewCartView(svc.cart, svc.products)
			view.Load(c)
			items := view.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cart is empty")
				return nil
			}
			for _, item := range items {
				name := fmt.Sprintf("product %d", item.ProductId)
				price := "-"
				if item.Product != nil {
					name = item.Product.ProductName
					price = item.Product.Price.StringFixed(2)
				}
				fmt.Fprintf(
					cmd.OutOrStdout(),
					"%d\t%s\tx%d\t%s\n",
					item.CartItemId,
					name,
					item.Quantity,
					price,
				)
			}
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%d items, total %s\n",
				view.TotalItems(),
				view.Total().StringFixed(2),
			)
			return nil
		},
	}
}

func newCartAddCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "add <productId> [quantity]",
		Short: "Add a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCartAdd")
			c = logger.WithContext(c)

			productId, err := parseId(args[0])
			if err != nil {
				return err
			}
			quantity := 1
			if len(args) == 2 {
				quantity, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid quantity %q with error=%w", args[1], err)
				}
			}

			item, err := svc.cart.Add(c, productId, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added cart item %d\n", item.CartItemId)
			return nil
		},
	}
}

func newCartUpdateCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "update <cartItemId> <quantity>",
		Short: "Change a cart item's quantity; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCartUpdate")
			c = logger.WithContext(c)

			cartItemId, err := parseId(args[0])
			if err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q with error=%w", args[1], err)
			}

			item, err := svc.cart.UpdateQuantity(c, cartItemId, quantity)
			if err != nil {
				return err
			}
			if quantity <= 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "removed cart item %d\n", cartItemId)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cart item %d now x%d\n", item.CartItemId, item.Quantity)
			return nil
		},
	}
}

func newCartRemoveCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <cartItemId>",
		Short: "Remove a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCartRemove")
			c = logger.WithContext(c)

			cartItemId, err := parseId(args[0])
			if err != nil {
				return err
			}
			if err := svc.cart.Remove(c, cartItemId); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed cart item %d\n", cartItemId)
			return nil
		},
	}
}

func newCartClearCommand(svc *services) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item in the session cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runCartClear")
			c = logger.WithContext(c)

			if err := svc.cart.Clear(c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return nil
		},
	}
}
