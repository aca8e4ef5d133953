package routes

import (
	"github.com/gorilla/mux"

	"nanopub-go/server/controllers"
	"nanopub-go/server/middleware"
)

// Register wires the reference server's two endpoints behind the
// logging middleware.
func Register(r *mux.Router, nc *controllers.NanopubController) {
	r.Use(middleware.Logger)
	r.HandleFunc("/", nc.Publish).Methods("POST")
	r.HandleFunc("/{trusty}", nc.Fetch).Methods("GET")
}
