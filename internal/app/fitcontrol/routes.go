// Package fitcontrol предоставляет маршруты основного приложения.
package fitcontrol

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fit-control/fit-control/internal/http/handlers/auth/login"
	clientcreate "github.com/fit-control/fit-control/internal/http/handlers/client/create"
	clientlist "github.com/fit-control/fit-control/internal/http/handlers/client/list"
	clientread "github.com/fit-control/fit-control/internal/http/handlers/client/read"
	clientremove "github.com/fit-control/fit-control/internal/http/handlers/client/remove"
	clientupdate "github.com/fit-control/fit-control/internal/http/handlers/client/update"
	expensecreate "github.com/fit-control/fit-control/internal/http/handlers/expense/create"
	expenselist "github.com/fit-control/fit-control/internal/http/handlers/expense/list"
	expenseremove "github.com/fit-control/fit-control/internal/http/handlers/expense/remove"
	expenseupdate "github.com/fit-control/fit-control/internal/http/handlers/expense/update"
	gymqrcode "github.com/fit-control/fit-control/internal/http/handlers/gym/qrcode"
	gymread "github.com/fit-control/fit-control/internal/http/handlers/gym/read"
	gymstats "github.com/fit-control/fit-control/internal/http/handlers/gym/stats"
	gymstatus "github.com/fit-control/fit-control/internal/http/handlers/gym/status"
	gymregister "github.com/fit-control/fit-control/internal/http/handlers/gympublic/register"
	pairingverify "github.com/fit-control/fit-control/internal/http/handlers/pairing/verify"
	paymentcreate "github.com/fit-control/fit-control/internal/http/handlers/payment/create"
	paymentlist "github.com/fit-control/fit-control/internal/http/handlers/payment/list"
	paymentremove "github.com/fit-control/fit-control/internal/http/handlers/payment/remove"
	paymentupdate "github.com/fit-control/fit-control/internal/http/handlers/payment/update"
	plancreate "github.com/fit-control/fit-control/internal/http/handlers/plan/create"
	planlist "github.com/fit-control/fit-control/internal/http/handlers/plan/list"
	"github.com/fit-control/fit-control/internal/http/handlers/superuser/admincreate"
	"github.com/fit-control/fit-control/internal/http/handlers/superuser/assignplan"
	"github.com/fit-control/fit-control/internal/http/handlers/superuser/gymcreate"
	"github.com/fit-control/fit-control/internal/http/handlers/superuser/gymlist"
	"github.com/fit-control/fit-control/internal/http/handlers/superuser/sweep"
	trialcreate "github.com/fit-control/fit-control/internal/http/handlers/trialrequest/create"
	triallist "github.com/fit-control/fit-control/internal/http/handlers/trialrequest/list"
	trialresolve "github.com/fit-control/fit-control/internal/http/handlers/trialrequest/resolve"
	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	authservice "github.com/fit-control/fit-control/internal/services/auth"
	clientservice "github.com/fit-control/fit-control/internal/services/client"
	expenseservice "github.com/fit-control/fit-control/internal/services/expense"
	gymservice "github.com/fit-control/fit-control/internal/services/gym"
	pairingservice "github.com/fit-control/fit-control/internal/services/pairing"
	paymentservice "github.com/fit-control/fit-control/internal/services/payment"
	planservice "github.com/fit-control/fit-control/internal/services/plan"
	sweeperservice "github.com/fit-control/fit-control/internal/services/sweeper"
)

// Services сервисы, которые обслуживают маршруты приложения.
type Services struct {
	Auth    *authservice.Service
	Gym     *gymservice.Service
	Pairing *pairingservice.Service
	Client  *clientservice.Service
	Payment *paymentservice.Service
	Expense *expenseservice.Service
	Plan    *planservice.Service
	Sweeper *sweeperservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/public/gyms", gymregister.New(logger, s.Gym).ServeHTTP)
		r.Post("/public/trial-requests", trialcreate.New(logger, s.Gym).ServeHTTP)
		r.Get("/verify/{token}", pairingverify.New(logger, s.Pairing).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/gym", gymread.New(logger, s.Gym).ServeHTTP)
			r.Get("/gym/statistics", gymstats.New(logger, s.Gym).ServeHTTP)
			r.Get("/gym/subscription-status", gymstatus.New(logger, s.Gym).ServeHTTP)
			r.Get("/gym/qrcode", gymqrcode.New(logger, s.Pairing).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, s.Client).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, s.Client).ServeHTTP)
			r.Get("/clients/{id}", clientread.New(logger, s.Client).ServeHTTP)
			r.Put("/clients/{id}", clientupdate.New(logger, s.Client).ServeHTTP)
			r.Delete("/clients/{id}", clientremove.New(logger, s.Client).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payment).ServeHTTP)
			r.Put("/payments/{id}", paymentupdate.New(logger, s.Payment).ServeHTTP)
			r.Delete("/payments/{id}", paymentremove.New(logger, s.Payment).ServeHTTP)

			r.Post("/expenses", expensecreate.New(logger, s.Expense).ServeHTTP)
			r.Get("/expenses", expenselist.New(logger, s.Expense).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, s.Expense).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, s.Expense).ServeHTTP)

			r.Get("/plans", planlist.New(logger, s.Plan).ServeHTTP)

			// Группа суперпользователя
			r.Route("/superuser", func(r chi.Router) {
				r.Use(middlewarectx.RequireSuperuser(logger))

				r.Post("/gyms", gymcreate.New(logger, s.Gym).ServeHTTP)
				r.Get("/gyms", gymlist.New(logger, s.Gym).ServeHTTP)
				r.Post("/gyms/{id}/assign-subscription", assignplan.New(logger, s.Gym).ServeHTTP)
				r.Post("/plans", plancreate.New(logger, s.Plan).ServeHTTP)
				r.Post("/users", admincreate.New(logger, s.Gym).ServeHTTP)
				r.Post("/sweep", sweep.New(logger, s.Sweeper).ServeHTTP)
				r.Get("/trial-requests", triallist.New(logger, s.Gym).ServeHTTP)
				r.Post("/trial-requests/{id}/resolve", trialresolve.New(logger, s.Gym).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
