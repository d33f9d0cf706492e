package server

import (
	"net/http"

	"palantir/internal/order/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(orderCtrl *controller.OrderController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.Create)
		r.Get("/", orderCtrl.GetAll)
		// The fixed segments must be declared before /{id} so chi does not
		// swallow them as ids.
		r.Get("/status/{status}", orderCtrl.GetByStatus)
		r.Get("/payment-status/{status}", orderCtrl.GetByPaymentStatus)
		r.Get("/creation-date", orderCtrl.GetByCreationDate)
		r.Get("/update-date", orderCtrl.GetByUpdateDate)
		r.Get("/{id}", orderCtrl.GetByID)
		r.Put("/{id}", orderCtrl.Update)
		r.Delete("/{id}", orderCtrl.Delete)
	})

	return r
}
