package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/gadgetline/storebot/app/banners"
	"github.com/gadgetline/storebot/app/cart"
	"github.com/gadgetline/storebot/app/catalog"
	"github.com/gadgetline/storebot/app/categories"
	"github.com/gadgetline/storebot/app/database"
	"github.com/gadgetline/storebot/app/orders"
	"github.com/gadgetline/storebot/app/products"
	"github.com/gadgetline/storebot/models"
)

var errMissingDSN = errors.New("DATABASE_URL is not set")

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errMissingDSN
	}

	db, err := database.Open(dsn)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	usersRepo := models.NewUsersRepository(db)
	cartRepo := models.NewCartRepository(db)
	ordersRepo := models.NewOrdersRepository(db)
	bannersRepo := models.NewBannersRepository(db)

	cartSvc := cart.NewService(cartRepo, productsRepo, usersRepo)
	orderSvc := orders.NewService(ordersRepo, cartRepo, productsRepo, usersRepo,
		orders.NewLogNotifier(log), log)

	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	cartHandler := cart.NewHandler(cartSvc)
	orderHandler := orders.NewHandler(orderSvc)
	bannerHandler := banners.NewBannerHandler(bannersRepo)
	productHandler := products.NewHandler(productsRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)
	mux.HandleFunc("GET /catalog/sku/{sku}", catalogHandler.HandleGetBySKU)
	mux.HandleFunc("GET /catalog/search", catalogHandler.HandleSearchByBrand)
	mux.HandleFunc("GET /categories/{id}/products", catalogHandler.HandleListByCategory)
	mux.HandleFunc("GET /subcategories/{id}/products", catalogHandler.HandleListBySubcategory)

	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)
	mux.HandleFunc("GET /categories/{id}/subcategories", categoryHandler.HandleGetSubcategories)
	mux.HandleFunc("POST /categories/{id}/subcategories", categoryHandler.HandleCreateSubcategory)

	mux.HandleFunc("POST /cart/items", cartHandler.HandleAdd)
	mux.HandleFunc("GET /cart/{userID}", cartHandler.HandleGet)
	mux.HandleFunc("POST /cart/{userID}/items/{productID}/increment", cartHandler.HandleIncrement)
	mux.HandleFunc("POST /cart/{userID}/items/{productID}/decrement", cartHandler.HandleDecrement)
	mux.HandleFunc("DELETE /cart/{userID}/items/{productID}", cartHandler.HandleRemove)

	mux.HandleFunc("POST /orders", orderHandler.HandlePlace)
	mux.HandleFunc("GET /orders", orderHandler.HandleListAll)
	mux.HandleFunc("GET /users/{userID}/orders", orderHandler.HandleListByUser)
	mux.HandleFunc("PUT /orders/{id}/status", orderHandler.HandleSetStatus)
	mux.HandleFunc("DELETE /orders/{id}", orderHandler.HandleSoftDelete)
	mux.HandleFunc("POST /orders/{id}/restore", orderHandler.HandleRestore)
	mux.HandleFunc("DELETE /orders/deleted", orderHandler.HandlePurge)

	mux.HandleFunc("POST /products", productHandler.HandleCreate)
	mux.HandleFunc("PUT /products/{id}/stock", productHandler.HandleSetStock)
	mux.HandleFunc("POST /products/{id}/images", productHandler.HandleAddImage)

	mux.HandleFunc("GET /banners/{type}", bannerHandler.HandleGet)
	mux.HandleFunc("PUT /banners/{type}", bannerHandler.HandlePut)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
