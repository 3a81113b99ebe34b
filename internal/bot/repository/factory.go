package repository

import (
	"log/slog"

	"github.com/central-university-dev/musicclub-bot/internal/bot/repository/orm"
	sqlrepo "github.com/central-university-dev/musicclub-bot/internal/bot/repository/sql"
	"github.com/central-university-dev/musicclub-bot/internal/bot/service"
	"github.com/central-university-dev/musicclub-bot/internal/config"
	"github.com/central-university-dev/musicclub-bot/internal/database"
	"github.com/central-university-dev/musicclub-bot/internal/domain/errors"
)

// Repositories собирает хранилища одного типа доступа к базе.
type Repositories struct {
	ConversationStates service.ConversationStateRepository
	Accounts           service.AccountRepository
	AuthTokens         service.AuthTokenRepository
	Calendars          service.CalendarRepository
}

type Factory struct {
	db     *database.PostgresDB
	config *config.Config
	logger *slog.Logger
}

func NewFactory(db *database.PostgresDB, config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (f *Factory) CreateRepositories() (*Repositories, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозиториев")

		return &Repositories{
			ConversationStates: orm.NewConversationStateRepository(f.db),
			Accounts:           orm.NewAccountRepository(f.db),
			AuthTokens:         orm.NewAuthTokenRepository(f.db),
			Calendars:          orm.NewCalendarRepository(f.db),
		}, nil
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозиториев")

		return &Repositories{
			ConversationStates: sqlrepo.NewConversationStateRepository(f.db),
			Accounts:           sqlrepo.NewAccountRepository(f.db),
			AuthTokens:         sqlrepo.NewAuthTokenRepository(f.db),
			Calendars:          sqlrepo.NewCalendarRepository(f.db),
		}, nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}
