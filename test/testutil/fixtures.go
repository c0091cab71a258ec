package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	paymentdomain "github.com/narwhalmedia/storefront/internal/payment/domain"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
)

// CreateTestUser creates a test user with the given id and role.
func CreateTestUser(id, role string) *userdomain.User {
	return &userdomain.User{
		ID:     id,
		Name:   gofakeit.Name(),
		Email:  gofakeit.Email(),
		Photo:  gofakeit.URL(),
		Role:   role,
		Gender: userdomain.GenderFemale,
		DOB:    time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestProduct creates a test product.
func CreateTestProduct(name, category string, price float64, stock int) *productdomain.Product {
	return &productdomain.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Photo:    "uploads/" + uuid.NewString() + ".jpg",
		Price:    price,
		Stock:    stock,
		Category: category,
	}
}

// CreateRandomProduct creates a product with fake data.
func CreateRandomProduct() *productdomain.Product {
	return CreateTestProduct(
		gofakeit.ProductName(),
		productdomain.NormalizeCategory(gofakeit.ProductCategory()),
		gofakeit.Price(10, 1000),
		gofakeit.Number(0, 100),
	)
}

// CreateTestOrder creates a processing order for the user containing one
// line item per product.
func CreateTestOrder(userID string, products ...*productdomain.Product) *orderdomain.Order {
	order := &orderdomain.Order{
		ID: uuid.NewString(),
		ShippingInfo: orderdomain.ShippingInfo{
			Address: gofakeit.Street(),
			City:    gofakeit.City(),
			State:   gofakeit.State(),
			Country: gofakeit.Country(),
			PinCode: gofakeit.Number(100000, 999999),
		},
		UserID: userID,
		Status: orderdomain.StatusProcessing,
	}

	for _, p := range products {
		order.Items = append(order.Items, orderdomain.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Photo:     p.Photo,
			Price:     p.Price,
			Quantity:  1,
		})
		order.Subtotal += p.Price
	}
	order.Total = order.Subtotal

	return order
}

// CreateTestCoupon creates a test coupon.
func CreateTestCoupon(code string, amount float64) *paymentdomain.Coupon {
	return &paymentdomain.Coupon{
		ID:     uuid.NewString(),
		Code:   code,
		Amount: amount,
	}
}
