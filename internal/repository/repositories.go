package repository

import (
	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/repository/memory"
	"github.com/deppfellow/ressourcerie/internal/repository/postgres"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

var (
	_ Transactor            = (*postgres.Transactor)(nil)
	_ AssociationRepository = (*postgres.AssociationRepository)(nil)
	_ MemberRepository      = (*postgres.MemberRepository)(nil)
	_ CategoryRepository    = (*postgres.CategoryRepository)(nil)
	_ OfferRepository       = (*postgres.OfferRepository)(nil)
	_ DemandRepository      = (*postgres.DemandRepository)(nil)

	_ Transactor            = (*memory.Store)(nil)
	_ AssociationRepository = (*memory.AssociationRepository)(nil)
	_ MemberRepository      = (*memory.MemberRepository)(nil)
	_ CategoryRepository    = (*memory.CategoryRepository)(nil)
	_ OfferRepository       = (*memory.OfferRepository)(nil)
	_ DemandRepository      = (*memory.DemandRepository)(nil)
)

// Repositories is the storage collaborator handed to the services.
// All repositories share the Transactor's unit of work.
type Repositories struct {
	Tx           Transactor
	Associations AssociationRepository
	Members      MemberRepository
	Categories   CategoryRepository
	Offers       OfferRepository
	Demands      DemandRepository
}

// NewRepositories builds the repositories for the configured storage driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	switch s.Config.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemoryRepositories(memory.New()), nil
	case config.StorageDriverPostgres:
		if s.DB == nil {
			return nil, errors.Errorf("storage driver %q needs a database connection", s.Config.Storage.Driver)
		}
		return NewPostgresRepositories(s.DB.Pool), nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", s.Config.Storage.Driver)
	}
}

func NewPostgresRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Tx:           postgres.NewTransactor(pool),
		Associations: postgres.NewAssociationRepository(pool),
		Members:      postgres.NewMemberRepository(pool),
		Categories:   postgres.NewCategoryRepository(pool),
		Offers:       postgres.NewOfferRepository(pool),
		Demands:      postgres.NewDemandRepository(pool),
	}
}

func NewMemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Tx:           store,
		Associations: store.Associations(),
		Members:      store.Members(),
		Categories:   store.Categories(),
		Offers:       store.Offers(),
		Demands:      store.Demands(),
	}
}
