package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

func toPageResponse[T, R any](page usecase.PageResult[T], convert func(T) R) dto.PageResponse[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return dto.PageResponse[R]{Items: items, Page: page.Page, Limit: page.Limit, Pages: page.Pages, Total: page.Total}
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			Product:  item.ProductID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price.InexactFloat64(),
		})
	}
	return dto.OrderResponse{
		ID:         o.ID,
		User:       o.UserID,
		Items:      items,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		Status:     string(o.Status),
		ShippingAddress: dto.ShippingAddress{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Phone:      o.ShippingAddress.Phone,
		},
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		TrackingCode:  o.TrackingCode,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		FinalPrice:   p.FinalPrice().InexactFloat64(),
		Images:       nonNil(p.Images),
		Category:     p.Category,
		Stock:        p.Stock,
		SalesCount:   p.SalesCount,
		Rating:       dto.RatingResponse{Rate: p.Rating.Rate, Count: p.Rating.Count},
		Features:     nonNil(p.Features),
		Tags:         nonNil(p.Tags),
		Discount:     p.Discount,
		IsBestSeller: p.IsBestSeller,
		IsNew:        p.IsNew,
		CreatedAt:    p.CreatedAt,
	}
}

func toProductInput(req dto.ProductRequest) usecase.ProductInput {
	return usecase.ProductInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        decimal.NewFromFloat(req.Price),
		Images:       req.Images,
		Category:     req.Category,
		Stock:        req.Stock,
		Features:     req.Features,
		Tags:         req.Tags,
		Discount:     req.Discount,
		IsBestSeller: req.IsBestSeller,
		IsNew:        req.IsNew,
	}
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         r.ID,
		User:       r.UserID,
		Product:    r.ProductID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
