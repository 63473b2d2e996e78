package routers

import (
	"homecare-service/internal/app/delivery/http/controllers"
	"homecare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachIntakeRoutes(router chi.Router, middlewares *middlewares.Middlewares, intakeController *controllers.IntakeController) {
	router.Get("/schema", intakeController.GetSchema)
	router.With(middlewares.DraftCreationRateLimit()).Post("/drafts", intakeController.CreateDraft)

	router.Route("/draft", func(r chi.Router) {
		r.Use(middlewares.DraftSession)
		r.Get("/", intakeController.FindDraft)
		r.Patch("/", intakeController.UpdateDraft)
		r.Delete("/", intakeController.DiscardDraft)
		r.Post("/submit", intakeController.SubmitDraft)
	})
}
