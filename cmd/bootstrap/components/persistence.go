package components

import (
	"medslot/internal/infra/readstore"
	"medslot/internal/infra/repository"
	"medslot/internal/infra/uow"
	"medslot/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns the transactional repositories; only the
		// pool-bound ones are wired here.
		uow.NewPostgresUoW,
		readstore.NewBookingReadStore,
		readstore.NewCenterReadStore,
		readstore.NewAssignmentReadStore,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.AuthUserReader)),
		),
	),
)
