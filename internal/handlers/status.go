package handlers

import (
	"net/http"

	"neuronwatch"
	"neuronwatch/internal/service"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// NeuronView is one table row as the presentation layer shows it.
type NeuronView struct {
	neuronwatch.Neuron
	// Heartbeat is the rendered last-heartbeat text: an RFC3339 instant,
	// "unavailable", or "no heartbeat yet".
	Heartbeat string `json:"heartbeat" example:"no heartbeat yet"`
	Pulsing   bool   `json:"pulsing"`
}

func neuronViews(neurons []neuronwatch.Neuron, pulsing []string) []NeuronView {
	lit := make(map[string]bool, len(pulsing))
	for _, id := range pulsing {
		lit[id] = true
	}
	out := make([]NeuronView, 0, len(neurons))
	for _, n := range neurons {
		out = append(out, NeuronView{
			Neuron:    n,
			Heartbeat: n.LastHeartbeat.String(),
			Pulsing:   lit[n.Identity()],
		})
	}
	return out
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Connection status
// @Description  Lifecycle state, last transport error, shutdown notice and retry schedule.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  service.Status
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Status())
}

// @Summary      Neuron table
// @Description  Neurons in server order, with rendered heartbeat text and pulse highlight.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, initial_load, neurons"
// @Router       /api/v1/neurons [get]
func (h *Handler) getNeurons(c *gin.Context) {
	views := neuronViews(h.services.Monitoring.Neurons(), h.services.Monitoring.Pulsing())
	c.JSON(http.StatusOK, gin.H{
		"count":        len(views),
		"initial_load": h.services.Monitoring.Status().InitialLoad,
		"neurons":      views,
	})
}

// @Summary      Pulsing neurons
// @Description  Identities whose heartbeat highlight is currently lit.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, pulsing"
// @Router       /api/v1/pulses [get]
func (h *Handler) getPulses(c *gin.Context) {
	ids := h.services.Monitoring.Pulsing()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(ids),
		"pulsing": ids,
	})
}

// liveView is what /ws pushes on every tick.
type liveView struct {
	Status  service.Status `json:"status"`
	Neurons []NeuronView   `json:"neurons"`
}

func (h *Handler) currentView() liveView {
	m := h.services.Monitoring
	return liveView{
		Status:  m.Status(),
		Neurons: neuronViews(m.Neurons(), m.Pulsing()),
	}
}
