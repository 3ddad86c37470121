package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	Likes() LikeRepository
	HealthCheck(ctx context.Context) error
}
