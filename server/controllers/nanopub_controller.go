package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"nanopub-go/core"
	"nanopub-go/server/services"
)

// NanopubController serves the two reference-server endpoints: publish
// (store a signed, Trusty-addressed nanopub) and fetch (retrieve one by
// its Trusty hash).
type NanopubController struct {
	store *services.Store
}

// NewNanopubController wires a controller to its backing store.
func NewNanopubController(store *services.Store) *NanopubController {
	return &NanopubController{store: store}
}

// Publish handles POST /: the body must be a valid, Trusty-addressed
// (signed) nanopub. On success it responds 201 with Location set to the
// Trusty URI; any parse or structural failure is a 400.
func (nc *NanopubController) Publish(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	np, err := core.New(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := np.Check(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if np.Info.TrustyHash == "" {
		http.Error(w, "only signed, Trusty-addressed nanopubs can be published", http.StatusBadRequest)
		return
	}

	trustyURI := np.Info.NormalizedNS + np.Info.TrustyHash
	nc.store.Put(np.Info.TrustyHash, body)
	logrus.WithField("trusty_uri", trustyURI).Info("published nanopub")

	w.Header().Set("Location", trustyURI)
	w.WriteHeader(http.StatusCreated)
}

// Fetch handles GET /{trusty}: it returns the stored TriG body or 404.
func (nc *NanopubController) Fetch(w http.ResponseWriter, r *http.Request) {
	trusty := mux.Vars(r)["trusty"]
	trusty = strings.TrimPrefix(trusty, "/")
	body, ok := nc.store.Get(trusty)
	if !ok {
		http.Error(w, "no nanopub stored for "+trusty, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/trig")
	w.Write(body)
}
