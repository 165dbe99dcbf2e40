// Package watersubscription собирает HTTP-приложение сервиса подписки на воду.
package watersubscription

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/water-subscription/internal/config"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/account/withdraw"
	addressread "github.com/magabrotheeeer/water-subscription/internal/http/handlers/address/read"
	addressupdate "github.com/magabrotheeeer/water-subscription/internal/http/handlers/address/update"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/card/list"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/card/register"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/card/remove"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/health"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/subscription/change"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/subscription/delivery"
	"github.com/magabrotheeeer/water-subscription/internal/http/handlers/water/info"
	"github.com/magabrotheeeer/water-subscription/internal/http/middlewarectx"
)

// Services сервисы, которые обслуживают маршруты API.
type Services struct {
	Catalog      info.Service
	Subscription change.Service
	Delivery     delivery.Service
	Cards        CardService
	Address      AddressService
	Account      withdraw.Service
}

// CardService операции реестра карт.
type CardService interface {
	list.Service
	register.Service
	remove.Service
}

// AddressService операции с адресом доставки.
type AddressService interface {
	addressread.Service
	addressupdate.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services,
	tokens middlewarectx.TokenParser, pinger health.Pinger, reg *prometheus.Registry) {
	metrics := middlewarectx.NewMetrics(reg)

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		metrics.Middleware,
	)

	r.Method(http.MethodGet, "/health", health.New(logger, pinger))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))
		r.Use(middlewarectx.JWTMiddleware(tokens, logger))

		r.Method(http.MethodGet, "/waters/{id}", info.New(logger, svc.Catalog))

		r.Method(http.MethodPut, "/user/water", change.New(logger, svc.Subscription))
		r.Method(http.MethodPost, "/user/water/delivery", delivery.New(logger, svc.Delivery))

		r.Method(http.MethodGet, "/user/cards", list.New(logger, svc.Cards))
		r.Method(http.MethodPost, "/user/cards", register.New(logger, svc.Cards))
		r.Method(http.MethodDelete, "/user/cards/{id}", remove.New(logger, svc.Cards))

		r.Method(http.MethodGet, "/user/address", addressread.New(logger, svc.Address))
		r.Method(http.MethodPut, "/user/address", addressupdate.New(logger, svc.Address))

		r.Method(http.MethodDelete, "/user", withdraw.New(logger, svc.Account))
	})
}
