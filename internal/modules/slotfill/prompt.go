// README: Slot-filling prompt sent to the external model.
package slotfill

import (
	"encoding/json"
	"fmt"
	"strings"

	"smartdrive/internal/modules/slots"
)

// strictReminder is appended to the prompt for the single retry.
const strictReminder = "\n\nRAPPEL: JSON strict uniquement. Aucun texte hors JSON."

// buildPrompt constructs the instructions for the model from the current state.
func buildPrompt(userMessage string, current slots.Slots, lastAsked slots.Name) string {
	currentJSON, _ := json.Marshal(current)
	lastAskedJSON := "null"
	if lastAsked != "" {
		b, _ := json.Marshal(string(lastAsked))
		lastAskedJSON = string(b)
	}

	return fmt.Sprintf(`Tu réponds UNIQUEMENT en JSON.

Tu es un assistant de slot-filling pour une recherche de voitures.
Tu DOIS renvoyer UNIQUEMENT un JSON conforme.

Slots actuels (JSON):
%s

Dernier slot demandé (peut être null):
%s

Message utilisateur:
%s

Règles:
- Remplis updated_slots avec les slots mis à jour (tu peux renvoyer tous les slots si tu veux).
- Valeurs autorisées:
  - fuel: %s|ANY|UNSET
  - gearbox: %s|ANY|UNSET
  - city: une des villes connues (%s) ou ANY ou UNSET
  - budget_max: un entier (MAD) ou ANY ou UNSET
  - category: texte (ex: %s) ou ANY ou UNSET
- Si l'utilisateur dit "peu importe" pour le dernier slot demandé, mets ce slot à ANY.

done = true UNIQUEMENT si AUCUN slot n'est égal à "UNSET". Sinon done=false.

Règle importante :
- Ne mets JAMAIS "category" à ANY si l'utilisateur n'a pas explicitement dit "peu importe".

JSON attendu:
{
  "updated_slots": {
    "category": "...",
    "fuel": "...",
    "gearbox": "...",
    "budget_max": "...",
    "city": "..."
  },
  "done": true
}`,
		currentJSON,
		lastAskedJSON,
		strings.TrimSpace(userMessage),
		strings.Join(slots.FuelValues, "|"),
		strings.Join(slots.GearboxValues, "|"),
		strings.Join(slots.Cities(), ", "),
		strings.Join(slots.CategoryValues, ", "),
	)
}
