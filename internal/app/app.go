// Package app wires configuration, stores, services and handlers together.
package app

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/config"
	"github.com/BuzzLyutic/taskseed-api/internal/handler"
	"github.com/BuzzLyutic/taskseed-api/internal/repo"
	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// StoreFactory opens the store for one table.
type StoreFactory func(schema repo.Schema) repo.ItemStore

// NewStoreFactory connects to the configured backend. The returned func
// releases the connection.
func NewStoreFactory(ctx context.Context, cfg config.Config, logger *zap.Logger) (StoreFactory, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		logger.Warn("using in-memory store, data is lost on restart")
		return func(s repo.Schema) repo.ItemStore { return repo.NewMemoryStore(s) }, func() {}, nil

	case config.BackendDynamoDB:
		client, err := repo.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using dynamodb store", zap.String("region", cfg.AWSRegion))
		return func(s repo.Schema) repo.ItemStore { return repo.NewDynamoStore(client, s) }, func() {}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL) // Создаем новое соединение к БД
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil { // Пытаемся пингануть БД
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		logger.Info("Successfully connected to the Database!")
		return func(s repo.Schema) repo.ItemStore { return repo.NewPostgresStore(pool, s) }, pool.Close, nil

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, nil, fmt.Errorf("connect firestore: %w", err)
		}
		logger.Info("using firestore store", zap.String("project", cfg.FirestoreProject))
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("close firestore", zap.Error(err))
			}
		}
		return func(s repo.Schema) repo.ItemStore { return repo.NewFirestoreStore(client, s) }, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewRouter builds every resource handler, each bound to its configured table.
func NewRouter(tables config.Tables, stores StoreFactory, logger *zap.Logger, opts ...service.Option) *handler.Router {
	crud := func(res service.Resource, table string, cfg handler.CRUDConfig) handler.Route {
		svc := service.NewCRUDService(res, stores(res.Schema(table)), opts...)
		return handler.CRUDRoute(svc, cfg, logger)
	}

	orderList := service.NewOrderListService(stores(service.OrderListSchema(tables.OrderList)), opts...)

	return handler.NewRouter(logger,
		crud(service.PreMemo, tables.PreMemo, handler.PreMemoConfig),
		crud(service.Task, tables.Task, handler.TaskConfig),
		crud(service.ChildTask, tables.ChildTask, handler.ChildTaskConfig),
		crud(service.Tag, tables.Tag, handler.TagConfig),
		crud(service.Color, tables.Color, handler.ColorConfig),
		handler.OrderListRoute(orderList, logger),
	)
}

// NewLogger builds the production zap logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return zcfg.Build()
}
