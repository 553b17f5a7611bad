package routers

import (
	"net/http"
	"strconv"

	"sirherobrine23.com.br/go-bds/imagegen/routers/utils"
)

type GenerateResponse struct {
	Filename      string `json:"filename"`
	Size          string `json:"size"`
	Bytes         int    `json:"bytes"`
	ContentBase64 string `json:"content_base64"`
}

// Generate new image and return as JSON, client keeps it to upload
func GenerateJSON(config *RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		art, err := config.Controller.Generate(r.Context())
		if err != nil {
			utils.JsonError(w, err)
			return
		}
		utils.JsonResponse(w, http.StatusOK, GenerateResponse{
			Filename:      art.Filename,
			Size:          art.Size(),
			Bytes:         len(art.Payload),
			ContentBase64: art.Base64(),
		})
	}
}

// Generate new image and return PNG body
func GeneratePNG(config *RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		art, err := config.Controller.Generate(r.Context())
		if err != nil {
			utils.JsonError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(art.Payload)))
		w.Header().Set("Content-Disposition", `attachment; filename="`+art.Filename+`"`)
		w.Header().Set("X-Filename", art.Filename)
		w.WriteHeader(http.StatusOK)
		w.Write(art.Payload)
	}
}
