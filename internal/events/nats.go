// Package events publishes notifications about finished generation runs for
// other services to consume.
package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"worldgen-engine/internal/worldgen/export"
)

const subjectWorldGenerated = "world.generated"

// Publisher publishes world.generated events over a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials url and returns a Publisher bound to it.
func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

// Close closes the underlying connection without draining it.
func (p *Publisher) Close() {
	p.conn.Close()
}

// WorldGeneratedEvent is the payload published after a successful run.
type WorldGeneratedEvent struct {
	RunID    string `json:"run_id"`
	Checksum string `json:"checksum"`
	Seed     uint64 `json:"seed"`
}

// PublishWorldGenerated emits a world.generated event for meta.
func (p *Publisher) PublishWorldGenerated(meta export.Metadata) error {
	payload, err := json.Marshal(WorldGeneratedEvent{
		RunID:    meta.RunID.String(),
		Checksum: meta.Checksum,
		Seed:     meta.Seed,
	})
	if err != nil {
		return err
	}
	return p.conn.Publish(subjectWorldGenerated, payload)
}
