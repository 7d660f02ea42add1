package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"worldgen-engine/internal/worldgen/state"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StageEvent is one progress frame sent to a connected client while a
// single generation call runs.
type StageEvent struct {
	Stage     string  `json:"stage"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Checksum  string  `json:"checksum"`
	Done      bool    `json:"done"`
}

// ProgressReporter streams StageEvent frames over an upgraded connection.
// It reports the progress of one in-flight generation call; it does not
// support continuous re-generation of an already-finished world.
type ProgressReporter struct {
	conn *websocket.Conn
}

// UpgradeProgress upgrades an HTTP connection to a websocket and returns a
// reporter bound to it.
func UpgradeProgress(w http.ResponseWriter, r *http.Request) (*ProgressReporter, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &ProgressReporter{conn: conn}, nil
}

// ReportStage sends one progress frame for a just-completed stage.
func (p *ProgressReporter) ReportStage(step state.Step, elapsedMs float64, checksum string) {
	if err := p.conn.WriteJSON(StageEvent{
		Stage:     step.String(),
		ElapsedMs: elapsedMs,
		Checksum:  checksum,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to write progress frame")
	}
}

// Close sends a final done frame and closes the connection.
func (p *ProgressReporter) Close() {
	_ = p.conn.WriteJSON(StageEvent{Done: true})
	_ = p.conn.Close()
}
