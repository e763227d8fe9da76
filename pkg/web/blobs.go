package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskflow-dev/taskflow/pkg/backend"
)

// BlobController registers the route serving stored attachment bytes. The
// route is public; keys are unguessable.
func BlobController(_ context.Context, r *mux.Router) {
	r.HandleFunc(backend.BlobPrefix+"{key:.+}", getBlob).Methods(http.MethodGet, http.MethodHead)
}

func getBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	blob, err := be.Blob(ctx, mux.Vars(r)["key"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	defer blob.Close() // nolint: errcheck

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, "", blob.ModTime, blob)
}
