package log

const (
	KEY_APP_NAME     = "app"
	KEY_ATTEMPT      = "attempt"
	KEY_CART_ITEM_ID = "cartItemId"
	KEY_CART_ITEMS   = "cartItems"
	KEY_CATEGORY_ID  = "categoryId"
	KEY_CONFIG       = "config"
	KEY_PAGE         = "page"
	KEY_PAGE_SIZE    = "pageSize"
	KEY_PROCESS      = "process"
	KEY_PRODUCT_ID   = "productId"
	KEY_QUANTITY     = "quantity"
	KEY_REQUEST_ID   = "X-Request-Id"
	KEY_SEARCH       = "search"
	KEY_SESSION_ID   = "sessionId"
	KEY_TAG          = "tag"
	KEY_URL          = "url"
)
