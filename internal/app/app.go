package app

import (
	"context"
	"net/http"

	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/config"
	"github.com/Rishu9835/DOORWISE/internal/pkg/delay"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goroutine"
	"github.com/Rishu9835/DOORWISE/internal/pkg/hash"
	"github.com/Rishu9835/DOORWISE/internal/pkg/idempotency"
	"github.com/Rishu9835/DOORWISE/internal/pkg/instrument"
	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
	"github.com/Rishu9835/DOORWISE/internal/pkg/mail"
	"github.com/Rishu9835/DOORWISE/internal/pkg/messaging"
	"github.com/Rishu9835/DOORWISE/internal/pkg/otp"
	"github.com/Rishu9835/DOORWISE/internal/pkg/roster"
	"github.com/Rishu9835/DOORWISE/internal/pkg/router"
	"github.com/Rishu9835/DOORWISE/internal/pkg/uid"
	"github.com/Rishu9835/DOORWISE/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	scheduler *delay.Scheduler
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	roster    roster.Roster
	mail      mail.Mail
	messaging messaging.Publisher

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initRoster()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
