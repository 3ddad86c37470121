package dto

import "time"

// UserResponse describes a public account view. Password hash is never exposed.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStatsResponse counts account activity.
type UserStatsResponse struct {
	OrdersCount  int `json:"ordersCount"`
	ReviewsCount int `json:"reviewsCount"`
	LikesCount   int `json:"likesCount"`
}

// ProfileResponse combines account with its activity.
type ProfileResponse struct {
	UserResponse
	Stats UserStatsResponse `json:"stats"`
}

// ProfileRequest carries partial profile changes.
type ProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// AccountRequest creates account on behalf of an administrator.
type AccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

// RoleRequest changes account role.
type RoleRequest struct {
	Role string `json:"role"`
}

// UserStatusRequest activates or deactivates account.
type UserStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// DashboardResponse summarises store activity.
type DashboardResponse struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
