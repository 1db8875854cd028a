package health

import (
	"encoding/json"
	"net/http"
)

// Controller answers liveness probes.
type Controller struct{}

func NewController() *Controller { return &Controller{} }

func (c *Controller) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
