package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func toUserDTO(u *model.User, now time.Time) *dto.UserResponseDTO {
	if u == nil {
		return nil
	}
	return &dto.UserResponseDTO{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		BusinessName:       u.BusinessName,
		Phone:              u.Phone,
		Language:           u.Language,
		SubscriptionStatus: string(u.SubscriptionStatus),
		SubscriptionEnd:    u.SubscriptionEnd,
		DaysRemaining:      u.DaysRemainingAt(now),
		SubscriptionValid:  u.SubscriptionValidAt(now),
		CreatedAt:          u.CreatedAt,
	}
}

func toProductDTO(p *model.Product) dto.ProductResponseDTO {
	return dto.ProductResponseDTO{
		ID:           p.ID,
		Name:         p.Name,
		ModelNumber:  p.ModelNumber,
		Category:     p.Category,
		BuyingPrice:  p.BuyingPrice.InexactFloat64(),
		SellingPrice: p.SellingPrice.InexactFloat64(),
		Stock:        p.Stock,
		Barcode:      p.Barcode,
		PhotoPath:    p.PhotoPath,
		CreatedAt:    p.CreatedAt,
	}
}

func toSaleDTO(s *model.Sale) dto.SaleResponseDTO {
	items := make([]dto.SaleItemResponseDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponseDTO{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			BuyingPrice:  it.BuyingPrice.InexactFloat64(),
			SellingPrice: it.SellingPrice.InexactFloat64(),
			LineTotal:    it.LineTotal().InexactFloat64(),
		})
	}
	return dto.SaleResponseDTO{
		ID:            s.ID,
		TotalAmount:   s.TotalAmount.InexactFloat64(),
		Profit:        s.Profit.InexactFloat64(),
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}

func toPaymentDTO(p *model.Payment) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		Amount:         p.Amount.InexactFloat64(),
		TransactionRef: p.TransactionRef,
		PayerPhone:     p.PayerPhone,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		VerifiedAt:     p.VerifiedAt,
		UserEmail:      p.UserEmail,
		UserBusiness:   p.UserBusiness,
		UserPhone:      p.UserPhone,
	}
}

func toMessageDTO(m *model.Message) dto.MessageResponseDTO {
	return dto.MessageResponseDTO{
		ID:             m.ID,
		UserID:         m.UserID,
		Sender:         string(m.Sender),
		Subject:        m.Subject,
		Content:        m.Content,
		IsAnnouncement: m.IsAnnouncement,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		UserEmail:      m.UserEmail,
		UserBusiness:   m.UserBusiness,
	}
}

func toMessageDTOs(msgs []model.Message) []dto.MessageResponseDTO {
	out := make([]dto.MessageResponseDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, toMessageDTO(&msgs[i]))
	}
	return out
}
