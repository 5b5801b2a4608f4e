package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	registerMetrics()

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return cors.Default().Handler(MetricsMiddleware(r))
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Eats backend starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
