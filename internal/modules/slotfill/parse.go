// README: Parsing boundary for model replies (direct JSON, then first balanced block).
package slotfill

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNoJSON means no parsable JSON object was found in the reply.
	ErrNoJSON = errors.New("no JSON object in model reply")
	// ErrInvalidReply means the JSON does not follow the updated_slots/done contract.
	ErrInvalidReply = errors.New("model reply violates contract")
)

// Proposal is a validated model reply.
type Proposal struct {
	// Updates is the raw slot mapping reported by the model; it still needs normalizing.
	Updates map[string]any
	// Done is the model's own completion flag. Informational only.
	Done bool
}

type wireReply struct {
	UpdatedSlots map[string]any `json:"updated_slots" validate:"required"`
	Done         *bool          `json:"done" validate:"required"`
}

var validate = validator.New()

// ParseReply turns raw model text into a Proposal. The error wraps ErrNoJSON or
// ErrInvalidReply; both are recoverable by asking again.
func ParseReply(raw string) (Proposal, error) {
	body, err := decodeObject(raw)
	if err != nil {
		return Proposal{}, err
	}

	var reply wireReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Proposal{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	if err := validate.Struct(reply); err != nil {
		return Proposal{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	return Proposal{Updates: reply.UpdatedSlots, Done: *reply.Done}, nil
}

// decodeObject returns the bytes of one JSON object: the whole reply when it parses,
// else the first balanced top-level {...} block that parses.
func decodeObject(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err == nil {
		return []byte(trimmed), nil
	}

	for start := strings.IndexByte(trimmed, '{'); start >= 0; {
		end := matchBrace(trimmed, start)
		if end < 0 {
			break
		}
		block := trimmed[start : end+1]
		if err := json.Unmarshal([]byte(block), &probe); err == nil {
			return []byte(block), nil
		}
		next := strings.IndexByte(trimmed[end+1:], '{')
		if next < 0 {
			break
		}
		start = end + 1 + next
	}
	return nil, ErrNoJSON
}

// matchBrace returns the index of the brace closing the one at start, skipping
// braces inside JSON strings. It returns -1 when the block never closes.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
