package api

import (
	"github.com/gorilla/mux"

	"github.com/olanest/olanest/internal/config"
	"github.com/olanest/olanest/internal/db"
	"github.com/olanest/olanest/internal/directory"
	"github.com/olanest/olanest/internal/favorites"
	"github.com/olanest/olanest/internal/identity"
	"github.com/olanest/olanest/internal/license"
	"github.com/olanest/olanest/internal/repository/sqlite"
	"github.com/olanest/olanest/internal/review"
	"github.com/olanest/olanest/internal/search"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, cache *review.AggregateCache) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(database, nil)
	resolver := identity.NewResolver(repo, cfg.AdminEmail, nil)
	dir := directory.New(repo, nil)
	reviews := review.NewAggregator(repo, cache, nil)
	searcher := search.New(dir, reviews, nil)
	workflow := license.NewWorkflow(repo, repo, nil)
	favIndex := favorites.NewIndex(repo, repo, nil)

	// Handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	contractorsHandler, err := NewContractorsHandler(dir, reviews, searcher, resolver)
	if err != nil {
		return nil, err
	}
	licensesHandler := NewLicensesHandler(workflow, resolver)
	reviewsHandler := NewReviewsHandler(reviews, resolver)
	favoritesHandler := NewFavoritesHandler(favIndex, resolver)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/contractors", contractorsHandler.Search).Methods("GET")
	r.HandleFunc("/v1/contractors/{id}", contractorsHandler.GetContractor).Methods("GET")
	r.HandleFunc("/v1/contractors/{id}/reviews", contractorsHandler.ListReviews).Methods("GET")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Contractor profile
	apiV1.HandleFunc("/contractors/profile", contractorsHandler.UpdateProfile).Methods("PUT")

	// License workflow
	apiV1.HandleFunc("/licenses", licensesHandler.Submit).Methods("POST")
	apiV1.HandleFunc("/licenses", licensesHandler.List).Methods("GET")
	apiV1.HandleFunc("/licenses/{id}/approve", licensesHandler.Approve).Methods("POST")
	apiV1.HandleFunc("/licenses/{id}/reject", licensesHandler.Reject).Methods("POST")

	// Reviews
	apiV1.HandleFunc("/reviews", reviewsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/reviews/{id}/reply", reviewsHandler.Reply).Methods("POST")

	// Favorites
	apiV1.HandleFunc("/favorites", favoritesHandler.List).Methods("GET")
	apiV1.HandleFunc("/favorites/{id}/toggle", favoritesHandler.Toggle).Methods("POST")

	return r, nil
}
