package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sainath-666/storefront/internal/storefront"
)

func newProductsCommand(svc *services) *cobra.Command {
	var (
		page       int
		pageSize   int
		categoryId int64
		search     string
		descending bool
		scroll     int
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with paging, category filter and search",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runProducts")
			c = logger.WithContext(c)

			if pageSize <= 0 {
				pageSize = svc.pageSize
			}
			browser := storefront.NewBrowser(svc.products, svc.categories, pageSize)
			browser.ApplyQuery(queryValues(page, categoryId, search))
			if descending {
				if err := browser.ToggleSort(c); err != nil {
					return err
				}
			} else if err := browser.Load(c); err != nil {
				return err
			}
			for i := 0; i < scroll; i++ {
				if err := browser.NextPage(c); err != nil {
					return err
				}
			}

			if message := browser.ErrMessage(); message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), message)
			}
			for _, product := range browser.Products() {
				fmt.Fprintf(
					cmd.OutOrStdout(),
					"%d\t%s\t%s\t(stock %d)\n",
					product.ProductId,
					product.ProductName,
					product.Price.StringFixed(2),
					product.Stock,
				)
			}
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"showing %d of %d products\n",
				len(browser.Products()),
				browser.TotalCount(),
			)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size (default from config)")
	cmd.Flags().Int64Var(&categoryId, "category", 0, "filter by category id")
	cmd.Flags().StringVar(&search, "search", "", "search text")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending by name")
	cmd.Flags().IntVar(&scroll, "scroll", 0, "append this many extra pages")
	return cmd
}

func queryValues(page int, categoryId int64, search string) map[string][]string {
	values := map[string][]string{}
	if page > 1 {
		values["page"] = []string{fmt.Sprintf("%d", page)}
	}
	if categoryId > 0 {
		values["categoryId"] = []string{fmt.Sprintf("%d", categoryId)}
	}
	if search != "" {
		values["searchTerm"] = []string{search}
	}
	return values
}

func newProductCommand(svc *services) *cobra.Command {
	var (
		add      bool
		quantity int
	)
	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := commandLogger(c, "main runProduct")
			c = logger.WithContext(c)

			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			detail := storefront.NewDetail(svc.products, svc.cart)
			if err := detail.Load(c, id); err != nil {
				return err
			}
			product := detail.Product()
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s\n%s\nprice: %s\tstock: %d\n",
				product.ProductName,
				product.Description,
				product.Price.StringFixed(2),
				product.Stock,
			)
			if related := detail.Related(); len(related) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "related:")
				for _, item := range related {
					fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\n", item.ProductId, item.ProductName)
				}
			}

			if add {
				for i := detail.Quantity(); i < quantity; i++ {
					detail.IncrementQuantity()
				}
				item, err := detail.AddToCart(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added cart item %d\n", item.CartItemId)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "add the product to the cart")
	cmd.Flags().IntVar(&quantity, "qty", 1, "quantity to add")
	return cmd
}
