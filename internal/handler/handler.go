package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/orderpay/schedule/internal/cache"
	"github.com/orderpay/schedule/internal/config"
	"github.com/orderpay/schedule/internal/repository"
	"github.com/orderpay/schedule/internal/ws"
)

// Publisher is the part of *amqp.Channel the handler needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	publisher  Publisher
	snapshots  cache.SnapshotCache
	hub        *ws.Hub

	Mux *chi.Mux
}

// NewHandler wires the schedule API. publisher may be nil, in which case
// report requests are refused; snapshots may be nil to disable caching.
func NewHandler(cfg *config.Config, repo *repository.Repository, publisher Publisher, snapshots cache.SnapshotCache, hub *ws.Hub) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerValidations(validate, trans); err != nil {
		return nil, err
	}

	if snapshots == nil {
		snapshots = cache.Nop{}
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		publisher:  publisher,
		snapshots:  snapshots,
		hub:        hub,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h.Mux.Route("/schedule", func(r chi.Router) {
		r.Get("/ws", h.hub.ServeWS)

		r.With(h.optionalMonth).Get("/", h.GetSchedule)
		r.Post("/", h.SaveSchedule)
		r.Put("/", h.SaveSchedule)
		r.Delete("/", h.DeleteDayRecord)

		r.Group(func(r chi.Router) {
			r.Use(h.requiredMonth)
			r.Get("/summary", h.GetSummary)
			r.Post("/report", h.SendPayrollReport)
		})
	})
}
