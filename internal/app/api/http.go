// Package api wires the food-order modules into one HTTP server.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-order/internal/common/events"
	"food-order/internal/common/httpx"
	"food-order/internal/common/ids"
	"food-order/internal/common/logger"
	"food-order/internal/config"
	"food-order/internal/connections/database"
	"food-order/internal/connections/rabbitmq"
	"food-order/internal/microservices/cart"
	cartrepo "food-order/internal/microservices/cart/repository"
	"food-order/internal/microservices/catalog"
	catalogsvc "food-order/internal/microservices/catalog/service"
	"food-order/internal/microservices/identity"
	identityrepo "food-order/internal/microservices/identity/repository"
	"food-order/internal/microservices/messaging"
	messagingrepo "food-order/internal/microservices/messaging/repository"
	"food-order/internal/microservices/order"
	orderrepo "food-order/internal/microservices/order/repository"
	"food-order/internal/microservices/wallet"
	walletrepo "food-order/internal/microservices/wallet/repository"
)

// Stores holds one repository set per module.
type Stores struct {
	Identity  *identityrepo.Repository
	Cart      *cartrepo.Repository
	Wallet    *walletrepo.Repository
	Order     *orderrepo.Repository
	Messaging *messagingrepo.Repository
}

func MemoryStores() Stores {
	return Stores{
		Identity:  identityrepo.NewMemory(),
		Cart:      cartrepo.NewMemory(),
		Wallet:    walletrepo.NewMemory(),
		Order:     orderrepo.NewMemory(),
		Messaging: messagingrepo.NewMemory(),
	}
}

func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Identity:  identityrepo.NewPostgres(pool),
		Cart:      cartrepo.NewPostgres(pool),
		Wallet:    walletrepo.NewPostgres(pool),
		Order:     orderrepo.NewPostgres(pool),
		Messaging: messagingrepo.NewPostgres(pool),
	}
}

// Deps are the external pieces an App is built from. Nil fields get defaults:
// the TheMealDB client for Catalog and events.Discard for Publisher.
type Deps struct {
	Stores    Stores
	Publisher events.Publisher
	Catalog   catalogsvc.MealSource
	Health    func(ctx context.Context) error
}

type App struct {
	Handler   http.Handler
	Identity  *identity.Module
	Catalog   *catalog.Module
	Cart      *cart.Module
	Wallet    *wallet.Module
	Order     *order.Module
	Messaging *messaging.Module
}

func Build(cfg *config.Config, deps Deps) *App {
	pub := deps.Publisher
	if pub == nil {
		pub = events.Discard{}
	}

	a := &App{}
	a.Identity = identity.New(deps.Stores.Identity, cfg.Auth, pub)
	if deps.Catalog != nil {
		a.Catalog = catalog.NewWithSource(deps.Catalog)
	} else {
		a.Catalog = catalog.New(cfg.Catalog)
	}
	a.Cart = cart.New(deps.Stores.Cart)
	directory := a.Identity.Service.IdentityService
	a.Wallet = wallet.New(deps.Stores.Wallet, directory, pub, cfg.Simulation)
	a.Order = order.New(deps.Stores.Order, a.Cart.Service.CartService, a.Wallet.Service.WalletService, pub, cfg.Simulation)
	a.Messaging = messaging.New(deps.Stores.Messaging, directory, a.Wallet.Service.WalletService, pub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthz(deps.Health))
	a.Identity.Routes(mux)
	a.Catalog.Routes(mux)
	a.Cart.Routes(mux)
	a.Wallet.Routes(mux)
	a.Order.Routes(mux)
	a.Messaging.Routes(mux)

	lg := logger.New("api")
	a.Handler = httpx.RequestLog(lg, httpx.Limit(cfg.Server.MaxConcurrent, a.Identity.Authenticate(mux)))
	return a
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				httpx.WriteProblem(w, http.StatusServiceUnavailable, "unavailable", err.Error(), nil)
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Run connects the configured storage and broker, then serves until ctx ends.
func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("api")
	deps := Deps{Stores: MemoryStores()}

	if cfg.Storage.Driver == config.DriverPostgres {
		pool, err := database.ConnectDB(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		deps.Stores = PostgresStores(pool)
		deps.Health = pool.Ping
		lg.Info("db_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})
	}

	instanceID := ids.New()
	var client *rabbitmq.Client
	if cfg.RabbitMQ.Enabled {
		var err error
		client, err = rabbitmq.Dial(cfg.RabbitMQ, false)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.DeclareTopology(cfg.RabbitMQ.Exchange); err != nil {
			return err
		}
		deps.Publisher = rabbitmq.NewEventPublisher(client, cfg.RabbitMQ.Exchange, instanceID)
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "exchange": cfg.RabbitMQ.Exchange})
	}

	app := Build(cfg, deps)
	if client != nil {
		if err := app.Messaging.Relay(ctx, client, cfg.RabbitMQ.Exchange, instanceID); err != nil {
			return err
		}
	}

	srv := httpx.New(":"+strconv.Itoa(cfg.Server.Port), app.Handler)
	srv.RegisterOnShutdown(app.Messaging.CloseStreams)
	lg.Info("service_started", map[string]any{
		"port":           cfg.Server.Port,
		"storage":        cfg.Storage.Driver,
		"max_concurrent": cfg.Server.MaxConcurrent,
		"instance_id":    instanceID,
	})
	return srv.Run(ctx)
}
