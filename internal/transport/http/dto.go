package http

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/shopspring/decimal"
)

type CartItemDTO struct {
	ID        string          `json:"id"`
	StoreID   string          `json:"store_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"quantity"`
	Selected  bool            `json:"selected"`
}

type PrepareCheckoutRequestDTO struct {
	Method string        `json:"method"`
	Items  []CartItemDTO `json:"items"`
}

type ConfirmCheckoutRequestDTO struct {
	PrepareCheckoutRequestDTO
	IdempotencyKey  string `json:"idempotency_key"`
	CustomerID      string `json:"customer_id"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

type CancelOrderRequestDTO struct {
	Confirm bool `json:"confirm"`
}

type ShippingOptionDTO struct {
	Method  string `json:"method"`
	Enabled bool   `json:"enabled"`
}

type StoreGroupDTO struct {
	StoreID   string        `json:"store_id"`
	StoreName string        `json:"store_name,omitempty"`
	Address   string        `json:"address,omitempty"`
	Latitude  *float64      `json:"latitude,omitempty"`
	Longitude *float64      `json:"longitude,omitempty"`
	Items     []CartItemDTO `json:"items"`
}

type CheckoutResponseDTO struct {
	CheckoutID    string          `json:"checkout_id"`
	Method        string          `json:"method"`
	Valid         bool            `json:"valid"`
	Reason        string          `json:"reason,omitempty"`
	SelectedCount int             `json:"selected_count"`
	Subtotal      string          `json:"subtotal"`
	ShippingFee   string          `json:"shipping_fee"`
	Total         string          `json:"total"`
	Currency      string          `json:"currency"`
	Groups        []StoreGroupDTO `json:"groups"`
}

type LineItemDTO struct {
	ItemID    string `json:"item_id"`
	StoreID   string `json:"store_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type OrderResponseDTO struct {
	ID              string        `json:"id"`
	CheckoutID      string        `json:"checkout_id"`
	CustomerID      string        `json:"customer_id"`
	Status          string        `json:"status"`
	Method          string        `json:"method"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	Subtotal        string        `json:"subtotal"`
	ShippingFee     string        `json:"shipping_fee"`
	Total           string        `json:"total"`
	Currency        string        `json:"currency"`
	Items           []LineItemDTO `json:"items"`
	CreatedAt       time.Time     `json:"created_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	DeliveredAt     *time.Time    `json:"delivered_at,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func mapCartItemsToDomain(dtos []CartItemDTO) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(dtos))

	for i, dto := range dtos {
		id, err := uuid.Parse(dto.ID)
		if err != nil {
			return nil, fmt.Errorf("items[%d].id: %w", i, err)
		}

		storeID, err := uuid.Parse(dto.StoreID)
		if err != nil {
			return nil, fmt.Errorf("items[%d].store_id: %w", i, err)
		}

		price, err := domain.ParseMoney(dto.UnitPrice.String(), dto.Currency)
		if err != nil {
			return nil, fmt.Errorf("items[%d].unit_price: %w", i, err)
		}

		items = append(items, domain.CartItem{
			ID:        id,
			StoreID:   storeID,
			UnitPrice: price,
			Quantity:  dto.Quantity,
			Selected:  dto.Selected,
		})
	}

	return items, nil
}

func mapCartItemToDTO(item domain.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:        item.ID.String(),
		StoreID:   item.StoreID.String(),
		UnitPrice: item.UnitPrice.Decimal(),
		Currency:  item.UnitPrice.Currency.String(),
		Quantity:  item.Quantity,
		Selected:  item.Selected,
	}
}

func mapCheckoutResultToDTO(r domain.CheckoutResult) CheckoutResponseDTO {
	groups := make([]StoreGroupDTO, 0, len(r.Groups))

	for _, g := range r.Groups {
		dto := StoreGroupDTO{
			StoreID: g.StoreID.String(),
			Items:   make([]CartItemDTO, 0, len(g.Items)),
		}
		if g.Store != nil {
			dto.StoreName = g.Store.Name
			dto.Address = g.Store.Address
			if g.Store.Location != nil {
				lat, lng := g.Store.Location.Latitude, g.Store.Location.Longitude
				dto.Latitude, dto.Longitude = &lat, &lng
			}
		}
		for _, item := range g.Items {
			dto.Items = append(dto.Items, mapCartItemToDTO(item))
		}
		groups = append(groups, dto)
	}

	return CheckoutResponseDTO{
		CheckoutID:    r.ID.String(),
		Method:        r.Method.String(),
		Valid:         r.Valid,
		Reason:        r.Reason.String(),
		SelectedCount: r.SelectedCount,
		Subtotal:      r.Subtotal.Major(),
		ShippingFee:   r.ShippingFee.Major(),
		Total:         r.Total.Major(),
		Currency:      r.Total.Currency.String(),
		Groups:        groups,
	}
}

func mapOrderToDTO(o domain.Order) OrderResponseDTO {
	items := make([]LineItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItemDTO{
			ItemID:    item.ItemID.String(),
			StoreID:   item.StoreID.String(),
			UnitPrice: item.UnitPrice.Major(),
			Quantity:  item.Quantity,
		})
	}

	return OrderResponseDTO{
		ID:              o.ID.String(),
		CheckoutID:      o.CheckoutID.String(),
		CustomerID:      o.CustomerID.String(),
		Status:          o.Status.String(),
		Method:          o.Method.String(),
		DeliveryAddress: o.DeliveryAddress,
		Subtotal:        o.Subtotal.Major(),
		ShippingFee:     o.ShippingFee.Major(),
		Total:           o.Total.Major(),
		Currency:        o.Total.Currency.String(),
		Items:           items,
		CreatedAt:       o.CreatedAt,
		CancelledAt:     o.CancelledAt,
		DeliveredAt:     o.DeliveredAt,
	}
}

func mapOrdersToDTO(orders []domain.Order) []OrderResponseDTO {
	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, mapOrderToDTO(o))
	}
	return dtos
}
