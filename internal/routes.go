package internal

import (
	"net/http"

	"jobdash/internal/controllers"
	"jobdash/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/dashboard", http.HandlerFunc(apiController.GetDashboard))
	routers.Get("/jobs", http.HandlerFunc(apiController.GetJobs))
	routers.Get("/jobs/{id}", http.HandlerFunc(apiController.GetJob))
	return routers
}
