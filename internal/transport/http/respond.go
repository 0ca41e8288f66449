package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// dataResponse is the success envelope shared by the JSON endpoints.
type dataResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

func respondData(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, dataResponse{Status: "success", Data: data})
}
