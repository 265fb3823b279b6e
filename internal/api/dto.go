package api

import (
	"time"

	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/order"
	"github.com/dulcecodigo/storefront/internal/domain/product"
	"github.com/dulcecodigo/storefront/internal/domain/review"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

// JSON shapes mirror the storefront client's field names.

type orderJSON struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"userId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Address       string    `json:"address"`
	Items         string    `json:"items"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	PointsEarned  int64     `json:"pointsEarned"`
	PointsUsed    int64     `json:"pointsUsed"`
	EmailSent     bool      `json:"emailSent"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toOrderJSON(o *order.Order) orderJSON {
	return orderJSON{
		ID:            o.ID,
		UserID:        o.UserID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		Items:         string(o.Items),
		Total:         o.Total.StringFixed(2),
		Status:        string(o.Status),
		PointsEarned:  o.PointsEarned,
		PointsUsed:    o.PointsUsed,
		EmailSent:     o.EmailSent,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderListJSON(orders []order.Order) []orderJSON {
	out := make([]orderJSON, len(orders))
	for i := range orders {
		out[i] = toOrderJSON(&orders[i])
	}
	return out
}

type userJSON struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LoyaltyPoints int64     `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserJSON(u *user.User) userJSON {
	return userJSON{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		LoyaltyPoints: u.LoyaltyPoints,
		CreatedAt:     u.CreatedAt,
	}
}

type loyaltyEntryJSON struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	OrderID     *int64    `json:"orderId"`
	Points      int64     `json:"points"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toLoyaltyListJSON(entries []loyalty.HistoryEntry) []loyaltyEntryJSON {
	out := make([]loyaltyEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = loyaltyEntryJSON{
			ID:          e.ID,
			UserID:      e.UserID,
			OrderID:     e.OrderID,
			Points:      e.Points,
			Type:        string(e.Type),
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}

type productJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"isActive"`
}

func toProductJSON(p *product.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
	}
}

func toProductListJSON(products []product.Product) []productJSON {
	out := make([]productJSON, len(products))
	for i := range products {
		out[i] = toProductJSON(&products[i])
	}
	return out
}

type reviewJSON struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Location     *string   `json:"location"`
	IsApproved   bool      `json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toReviewJSON(rv *review.Review) reviewJSON {
	return reviewJSON{
		ID:           rv.ID,
		CustomerName: rv.CustomerName,
		Rating:       rv.Rating,
		Comment:      rv.Comment,
		Location:     rv.Location,
		IsApproved:   rv.IsApproved,
		CreatedAt:    rv.CreatedAt,
	}
}

func toReviewListJSON(reviews []review.Review) []reviewJSON {
	out := make([]reviewJSON, len(reviews))
	for i := range reviews {
		out[i] = toReviewJSON(&reviews[i])
	}
	return out
}
