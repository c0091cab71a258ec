package cache

// Fixed cache keys.
const (
	KeyLatestProducts  = "latest-products"
	KeyCategories      = "categories"
	KeyAllProducts     = "all-products"
	KeyAllOrders       = "all-orders"
	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

const (
	productKeyPrefix  = "product-"
	orderKeyPrefix    = "order-"
	myOrdersKeyPrefix = "my-orders-"
)

// ProductKey is the key of a single cached product.
func ProductKey(id string) string {
	return productKeyPrefix + id
}

// OrderKey is the key of a single cached order.
func OrderKey(id string) string {
	return orderKeyPrefix + id
}

// MyOrdersKey is the key of a user's cached order history.
func MyOrdersKey(userID string) string {
	return myOrdersKeyPrefix + userID
}

// productListKeys are dropped whenever any product changes.
var productListKeys = []string{KeyLatestProducts, KeyCategories, KeyAllProducts}

// adminKeys are the dashboard keys.
var adminKeys = []string{KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts}
