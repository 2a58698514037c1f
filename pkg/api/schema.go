package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidCommand = errors.New("invalid command")
)

const schemaBase = "https://salvage-server/schemas/"

const envelopeSchema = `{
  "type": "object",
  "required": ["action"],
  "properties": {
    "action":  {"type": "string", "minLength": 1},
    "token":   {"type": "string"},
    "codec":   {"enum": ["json", "msgpack"]},
    "payload": {}
  },
  "additionalProperties": false
}`

const cellProps = `"x": {"type": "integer", "minimum": 0}, "y": {"type": "integer", "minimum": 0}`

const targetProp = `"targetId": {"type": "string", "minLength": 1}`

// payloadSchemas - схема payload для каждого действия. Действия без payload здесь отсутствуют.
var payloadSchemas = map[string]string{
	"MOVE": `{"type": "object", "required": ["x", "y"], "properties": {` + cellProps + `}}`,

	"COLLECT":       `{"type": "object", "required": ["targetId"], "properties": {` + targetProp + `}}`,
	"ATTACK":        `{"type": "object", "required": ["targetId"], "properties": {` + targetProp + `}}`,
	"RETRIEVE_CREW": `{"type": "object", "required": ["targetId"], "properties": {` + targetProp + `}}`,

	"DEPLOY_CREW": `{"type": "object", "required": ["x", "y", "targetId"], "properties": {` + cellProps + `, ` + targetProp + `}}`,

	"CANCEL_COLLECTION": `{"type": "object", "required": ["confirm"], "properties": {"confirm": {"type": "boolean"}}}`,

	"PURCHASE": `{"type": "object", "required": ["kind", "itemId"], "properties": {
		"kind":   {"enum": ["power_up", "map_unlock", "ship_upgrade", "artifact_clue"]},
		"itemId": {"type": "string", "minLength": 1},
		` + cellProps + `}}`,

	"SELL_CARGO": `{"type": "object", "required": ["resource", "count"], "properties": {
		"resource": {"type": "string", "minLength": 1},
		"count":    {"type": "integer", "minimum": 1}}}`,
}

// Действия, которым payload не нужен
var bareActions = map[string]bool{"LOGIN": true, "INIT": true}

var (
	envelope *jsonschema.Schema
	payloads = make(map[string]*jsonschema.Schema, len(payloadSchemas))
)

func init() {
	envelope = jsonschema.MustCompileString(schemaBase+"command.json", envelopeSchema)
	for action, src := range payloadSchemas {
		payloads[action] = jsonschema.MustCompileString(schemaBase+strings.ToLower(action)+".json", src)
	}
}

// decodeAny разбирает JSON для валидатора. Числа остаются json.Number, чтобы "integer" проверялся точно.
func decodeAny(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeCommand разбирает и проверяет сообщение клиента по JSON Schema.
// Action приводится к верхнему регистру.
func DecodeCommand(raw []byte) (ClientCommand, error) {
	var cmd ClientCommand

	doc, err := decodeAny(raw)
	if err != nil {
		return cmd, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := envelope.Validate(doc); err != nil {
		return cmd, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	cmd.Action = strings.ToUpper(strings.TrimSpace(cmd.Action))

	if err := ValidatePayload(cmd.Action, cmd.Payload); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// ValidatePayload проверяет payload конкретного действия
func ValidatePayload(action string, payload json.RawMessage) error {
	if bareActions[action] {
		return nil
	}
	schema, ok := payloads[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return fmt.Errorf("%w: %s requires payload", ErrInvalidCommand, action)
	}
	doc, err := decodeAny(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCommand, action, err)
	}
	return nil
}
