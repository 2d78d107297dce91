// Package handler contains the HTTP handlers of the trading application.
package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trading/internal/domain/entity"
)

// View structs decouple the wire format from the domain entities, most
// importantly keeping the password hash out of every response.

// UserView is the wire representation of a user account.
type UserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
}

// CustomerView is the wire representation of a customer.
type CustomerView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	EIK     string    `json:"eik"`
	Email   string    `json:"email"`
	Address string    `json:"address,omitempty"`
}

// ProductView is the wire representation of a product.
type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}

// OrderItemView is the wire representation of one order line.
type OrderItemView struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// OrderView is the wire representation of an order.
type OrderView struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customerId"`
	CustomerName string          `json:"customerName,omitempty"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	CreatedOn    time.Time       `json:"createdOn"`
	Items        []OrderItemView `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	InvoiceID    *uuid.UUID      `json:"invoiceId,omitempty"`
}

func toUserView(user *entity.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Active:   user.Active,
	}
}

func toUserViews(users []*entity.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

func toCustomerView(customer *entity.Customer) CustomerView {
	return CustomerView{
		ID:      customer.ID,
		Name:    customer.Name,
		EIK:     customer.EIK,
		Email:   customer.Email,
		Address: customer.Address,
	}
}

func toCustomerViews(customers []*entity.Customer) []CustomerView {
	views := make([]CustomerView, 0, len(customers))
	for _, customer := range customers {
		views = append(views, toCustomerView(customer))
	}

	return views
}

func toProductView(product *entity.Product) ProductView {
	return ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		Description: product.Description,
	}
}

func toProductViews(products []*entity.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, toProductView(product))
	}

	return views
}

func toOrderView(order *entity.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		}
		if item.Product != nil {
			view.ProductName = item.Product.Name
		}
		items = append(items, view)
	}

	view := OrderView{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		CreatedOn:  order.CreatedOn,
		Items:      items,
		TotalPrice: order.TotalPrice,
		InvoiceID:  order.InvoiceID,
	}
	if order.Customer != nil {
		view.CustomerName = order.Customer.Name
	}
	if order.Creator != nil {
		view.CreatedBy = order.Creator.Username
	}

	return view
}

func toOrderViews(orders []*entity.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}

	return views
}
