package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"nanopub-go/server/config"
	"nanopub-go/server/controllers"
	"nanopub-go/server/routes"
	"nanopub-go/server/services"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.Fatal(err)
	}
	store := services.NewStore()
	ctrl := controllers.NewNanopubController(store)

	r := mux.NewRouter()
	routes.Register(r, ctrl)

	logrus.Infof("nanopub reference server listening on %s", config.AppConfig.Port)
	if err := http.ListenAndServe(":"+config.AppConfig.Port, r); err != nil {
		logrus.Fatal(err)
	}
}
