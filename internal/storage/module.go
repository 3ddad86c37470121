// Package storage selects the repository backend configured for the service.
package storage

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/memory"
	"github.com/polkiloo/storefront/internal/storage/postgres"
)

// Module exposes the configured Factory together with every repository it builds.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.ProductRepository { return f.Products() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.ReviewRepository { return f.Reviews() },
		func(f repository.Factory) repository.LikeRepository { return f.Likes() },
	),
)

func newFactory(p postgres.Params) (repository.Factory, error) {
	if p.Config.StorageDriver == config.StorageMemory {
		p.Logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}
	return postgres.Open(p)
}
