package routers

import (
	"homecare-service/internal/app/delivery/http/controllers"
	"homecare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPageRoutes(router chi.Router, middlewares *middlewares.Middlewares, pageController *controllers.PageController) {
	router.Get("/{page_slug}/metadata", pageController.FindPageMetadata)
}
