package router

import (
	"net/http"

	"github.com/chachabrian/delivery-backend/internal/handlers"
	"github.com/chachabrian/delivery-backend/internal/middleware"
	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are built once at startup and shared by every request.
type Dependencies struct {
	DB       *gorm.DB
	Storage  storage.Store
	Hub      *services.Hub
	Notifier services.ShipmentNotifier
	Hasher   services.PasswordHasher
}

type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

// Routes is the full route table of the API.
func Routes(deps Dependencies) []Route {
	users := services.NewUserService(deps.DB, deps.Storage, deps.Hasher)
	riders := services.NewRiderService(deps.DB, deps.Storage, deps.Hasher)
	shipments := services.NewShipmentService(deps.DB, deps.Storage, deps.Notifier)
	image := middleware.ImageUpload("image", middleware.MaxImageBytes)

	return []Route{
		{http.MethodPost, "/user/add-user", chain(image, handlers.AddUser(users))},
		{http.MethodGet, "/user/get-users", chain(handlers.GetUsers(users))},
		{http.MethodPost, "/user/login", chain(handlers.LoginUser(users))},
		{http.MethodGet, "/search/search-user/:phone/:uid", chain(handlers.SearchUsers(users))},

		{http.MethodPost, "/rider/add-rider", chain(image, handlers.AddRider(riders))},
		{http.MethodGet, "/rider/get-riders", chain(handlers.GetRiders(riders))},
		{http.MethodPost, "/rider/login", chain(handlers.LoginRider(riders))},
		{http.MethodGet, "/rider/get-rider/:rid", chain(handlers.GetRider(riders))},

		{http.MethodPost, "/shipments/shipments", chain(image, handlers.CreateShipment(shipments))},
		{http.MethodGet, "/shipments/shipments", chain(handlers.GetShipments(shipments))},
		{http.MethodGet, "/shipments/sender/:senderId", chain(handlers.GetShipmentsBySender(shipments))},
		{http.MethodGet, "/shipments/receiver/:receiverId", chain(handlers.GetShipmentsByReceiver(shipments))},

		{http.MethodGet, "/healthz", chain(handlers.Healthz(deps.DB))},
		{http.MethodGet, "/ws", chain(handlers.WebSocketHandler(deps.Hub))},
	}
}

// New builds the gin engine with middleware and every route registered once.
func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	if local, ok := deps.Storage.(*storage.LocalStore); ok {
		r.Static("/uploads", local.Dir())
	}

	for _, route := range Routes(deps) {
		r.Handle(route.Method, route.Path, route.Handlers...)
	}

	return r
}

func chain(h ...gin.HandlerFunc) []gin.HandlerFunc {
	return h
}
