package bridge

import (
	"context"
	"time"

	"github.com/muurk/luxctl/internal/heatpump"
	"github.com/muurk/luxctl/internal/session"
)

// Reading is one decoded value in a snapshot.
type Reading struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Raw   int32   `json:"raw"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Snapshot is the JSON document pushed to bridge clients after each poll.
type Snapshot struct {
	Time         time.Time `json:"time"`
	Source       string    `json:"source"`
	Parameters   []Reading `json:"parameters"`
	Calculations []Reading `json:"calculations"`
}

// Poller produces a fresh snapshot on every bridge tick.
type Poller interface {
	Poll(ctx context.Context) (*Snapshot, error)
}

// SessionPoller adapts a controller session into a Poller by running one
// read-only cycle per tick.
type SessionPoller struct {
	Session *session.Session
}

// Poll implements Poller
func (p *SessionPoller) Poll(ctx context.Context) (*Snapshot, error) {
	if err := p.Session.Read(ctx); err != nil {
		return nil, err
	}
	return &Snapshot{
		Time:         time.Now().UTC(),
		Source:       p.Session.Addr(),
		Parameters:   toReadings(p.Session.Parameters.All()),
		Calculations: toReadings(p.Session.Calculations.All()),
	}, nil
}

func toReadings(values []heatpump.Value) []Reading {
	out := make([]Reading, len(values))
	for i, v := range values {
		out[i] = Reading{
			Index: v.Index,
			Name:  v.Name,
			Raw:   v.Raw,
			Value: v.Scaled,
			Unit:  v.Unit.String(),
		}
	}
	return out
}
