package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/storefront-tech/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/storefront-tech/go-backend/internal/usecase"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	auth   *AuthMiddleware
	logger logger.Logger
}

func NewRouter(router *chi.Mux, auth *AuthMiddleware, logger logger.Logger) *Router {
	return &Router{router: router, auth: auth, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, orderUC usecase.OrderUC, prUC usecase.ProductUC, accUC usecase.AccountUC) {
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		registerProductRoutes(v1, prHandler, r.auth)

		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, cartHandler, r.auth)

		orderHandler := NewOrderHandler(orderUC, r.logger)
		registerOrderRoutes(v1, orderHandler, r.auth)

		accHandler := NewAccountHandler(accUC, r.logger)
		registerAccountRoutes(v1, accHandler, r.auth)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, auth *AuthMiddleware) {
	router.Route("/products", func(pr chi.Router) {
		// Каталог открыт без авторизации
		pr.Get("/", prHandler.listProducts)
		pr.Get("/info", prHandler.getProductsInfo)
		pr.Get("/{id}", prHandler.getProduct)

		pr.Group(func(admin chi.Router) {
			admin.Use(auth.Identity, auth.AdminOnly)
			admin.Post("/", prHandler.registerNewProduct)
			admin.Put("/{id}", prHandler.updateProduct)
			admin.Delete("/{id}", prHandler.deleteProduct)
		})
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler, auth *AuthMiddleware) {
	router.Route("/carts", func(cr chi.Router) {
		cr.Use(auth.Identity)

		cr.Get("/my", cartHandler.listMyCart)
		cr.Post("/items/{productID}", cartHandler.addToCart)
		cr.Delete("/items/{productID}", cartHandler.removeFromCart)

		cr.Group(func(admin chi.Router) {
			admin.Use(auth.AdminOnly)
			admin.Get("/", cartHandler.listAllCarts)
		})
	})
}

func registerOrderRoutes(router chi.Router, orderHandler *OrderHandler, auth *AuthMiddleware) {
	router.Route("/orders", func(or chi.Router) {
		or.Use(auth.Identity)

		or.Post("/purchase", orderHandler.purchase)
		or.Get("/my", orderHandler.listMyOrders)
		or.Get("/{id}", orderHandler.getOrder)

		or.Group(func(admin chi.Router) {
			admin.Use(auth.AdminOnly)
			admin.Get("/", orderHandler.listAllOrders)
			admin.Delete("/{id}", orderHandler.deleteOrder)
		})
	})
}

func registerAccountRoutes(router chi.Router, accHandler *AccountHandler, auth *AuthMiddleware) {
	router.Route("/accounts", func(ar chi.Router) {
		ar.Use(auth.Identity)

		ar.Get("/me", accHandler.getMyAccount)
		ar.Put("/me", accHandler.updateMyProfile)

		ar.Group(func(admin chi.Router) {
			admin.Use(auth.AdminOnly)
			admin.Get("/", accHandler.listAccounts)
			admin.Get("/{id}", accHandler.getAccount)
			admin.Delete("/{id}", accHandler.deleteAccount)
		})
	})
}
