package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/reptitrack/reptitrack-backend/internal/modules/auth"
	"github.com/reptitrack/reptitrack-backend/internal/modules/cart"
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/reptitrack/reptitrack-backend/internal/modules/checkout"
	"github.com/reptitrack/reptitrack-backend/internal/modules/inventory"
	"github.com/reptitrack/reptitrack-backend/internal/modules/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalogue & Inventory ───────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	store := inventory.NewPostgresStore(db)
	synchronizer := inventory.NewSynchronizer(store)
	inventory.NewHandler(synchronizer).RegisterRoutes(router)

	// ── Cart & Checkout ─────────────────────────────────────
	sessions := cart.NewSessions()
	cart.NewHandler(sessions, catalogService).RegisterRoutes(router)

	checkoutService := checkout.NewService(catalogRepo, synchronizer, sessions)
	checkout.NewHandler(checkoutService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("ReptiTrack API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
