// README: Turn reply contract and sentinel errors.
package chat

import (
	"errors"

	"smartdrive/internal/modules/scoring"
	"smartdrive/internal/modules/slots"
)

// ErrMissingSession is returned when a turn carries no session key.
var ErrMissingSession = errors.New("session id is required")

const (
	MessageResults   = "Parfait ✅ Voilà les meilleures options. Clique sur une voiture à droite pour voir les détails."
	MessageNoResults = "Je n’ai rien trouvé 😕 Tu veux élargir (budget, ville, type) ?"
)

// DefaultResultLimit caps the ranked list returned once every slot is resolved.
const DefaultResultLimit = 15

// Reply is the outcome of one turn.
type Reply struct {
	Assistant string           `json:"assistant"`
	Slots     slots.Slots      `json:"slots"`
	Cars      []scoring.Result `json:"cars"`
	Done      bool             `json:"done"`
	// Missing is the slot being asked about, empty once done.
	Missing slots.Name `json:"missing,omitempty"`
}
