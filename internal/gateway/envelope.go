package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushiibot/sushii-interactions/internal/interaction"
)

const (
	dispatchOp        = 0
	interactionCreate = "INTERACTION_CREATE"
)

var (
	// ErrEmptyPayload is returned for a message without a body.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrNotInteraction is returned for gateway dispatches other than
	// INTERACTION_CREATE.
	ErrNotInteraction = errors.New("not an interaction create dispatch")
)

// Envelope is a raw gateway payload as forwarded by the gateway proxy.
type Envelope struct {
	Op       int             `json:"op"`
	Type     string          `json:"t"`
	Sequence *int64          `json:"s"`
	Data     json.RawMessage `json:"d"`
}

// DecodeEnvelope decodes an INTERACTION_CREATE dispatch into an Interaction.
// Other dispatches yield an error wrapping ErrNotInteraction.
func DecodeEnvelope(payload []byte) (*interaction.Interaction, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to decode gateway envelope: %w", err)
	}

	if env.Op != dispatchOp || env.Type != interactionCreate {
		return nil, fmt.Errorf("%w: op %d, t %q", ErrNotInteraction, env.Op, env.Type)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.New("interaction dispatch has no data")
	}

	return interaction.Parse(env.Data)
}
