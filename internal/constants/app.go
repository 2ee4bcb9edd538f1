package constants

const (
	APP_STOREFRONT = "storefront"

	ENDPOINT_PRODUCTS   = "Products"
	ENDPOINT_CATEGORIES = "Categories"
	ENDPOINT_CART       = "Cart"
)
