package internal

import (
	"net/http"

	"github.com/2beens/notesbox/pkg"
	"github.com/2beens/notesbox/pkg/apierr"
)

var notFoundError = apierr.NewNotFoundError("Not found")

type healthResponse struct {
	Status string `json:"status"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteData(w, http.StatusOK, healthResponse{Status: "ok"})
}
