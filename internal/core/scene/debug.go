package scene

import (
	"encoding/json"
	"net/http"

	"github.com/colonyops/scenelens/internal/core/annotation"
)

type debugState struct {
	Document string               `json:"document"`
	Status   string               `json:"status"`
	Pending  *int                 `json:"pending,omitempty"`
	SceneID  *int                 `json:"scene_id,omitempty"`
	Anchor   int                  `json:"anchor"`
	Segments []annotation.Segment `json:"segments,omitempty"`
}

// DebugHandler serves the controller's current state as JSON.
func DebugHandler(c *Controller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		out := debugState{
			Document: c.Document(),
			Status:   c.Status().String(),
			Anchor:   annotation.NoAnchor,
		}
		if id, ok := c.Pending(); ok {
			out.Pending = &id
		}
		if st := c.State(); st != nil {
			out.SceneID = &st.SceneID
			out.Anchor = st.Anchor
			out.Segments = st.Segments
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			c.log.Debug().Err(err).Msg("write debug state")
		}
	})
}
