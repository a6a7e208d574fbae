package internal

import (
	"net/http"

	"vsd/internal/controllers"
	"vsd/internal/providers"
	"vsd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/session/bootstrap", http.HandlerFunc(apiController.Bootstrap))
	routers.Post("/session/login", http.HandlerFunc(apiController.Login))
	routers.Post("/session/logout", http.HandlerFunc(apiController.Logout))

	routers.Get("/videos", http.HandlerFunc(apiController.GetVideos))
	routers.Get("/videos/filter", http.HandlerFunc(apiController.FilterVideos))
	routers.Post("/videos/create", http.HandlerFunc(apiController.CreateVideo))
	routers.Post("/videos/update", http.HandlerFunc(apiController.UpdateVideo))
	routers.Post("/videos/delete", http.HandlerFunc(apiController.DeleteVideo))
	routers.Post("/videos/view", http.HandlerFunc(apiController.AddView))
	routers.Post("/videos/like", http.HandlerFunc(apiController.AddLike))

	routers.Post("/upload", http.HandlerFunc(apiController.StartUpload))
	routers.Get("/upload/progress", http.HandlerFunc(apiController.UploadProgress))

	routers.Get("/admin/users", http.HandlerFunc(apiController.AdminUsers))

	return routers
}
