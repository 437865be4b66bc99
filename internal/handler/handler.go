package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Rugbydude80/localops-ai-sub001/internal/collab"
	"github.com/Rugbydude80/localops-ai-sub001/internal/config"
	"github.com/Rugbydude80/localops-ai-sub001/internal/reasoning"
	"github.com/Rugbydude80/localops-ai-sub001/internal/repository"
	"github.com/Rugbydude80/localops-ai-sub001/internal/scheduler"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	solver        *scheduler.Solver
	reasoner      *reasoning.Engine
	collab        *collab.State

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	repo *repository.Repository,
	notifyCh *amqp.Channel,
	solver *scheduler.Solver,
	reasoner *reasoning.Engine,
	collabState *collab.State,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		solver:        solver,
		reasoner:      reasoner,
		collab:        collabState,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)

	h.Mux.Route("/businesses/{businessID}", func(r chi.Router) {
		r.Get("/staff", h.ListStaff)
		r.Get("/shifts", h.ListShifts)

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", h.ListDrafts)
			r.Post("/generate", h.GenerateDraft)
			r.Route("/{draftID}", func(r chi.Router) {
				r.Get("/", h.GetDraft)
				r.Post("/validate", h.ValidateAssignments)
				r.Post("/publish", h.PublishDraft)
				r.Delete("/", h.DiscardDraft)
				r.Get("/presence", h.GetPresence)
				r.Get("/conflicts", h.ListConflicts)
			})
		})

		r.Post("/conflicts/{conflictID}/resolve", h.ResolveConflict)
	})
}
