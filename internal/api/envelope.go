package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The backend wraps payloads inconsistently across endpoints. List
// responses arrive as a bare array, {"data":[...]} or {"data":{"data":[...]}};
// single objects arrive bare or under "data". Decoding tries each shape in
// turn and fails with ErrUnrecognizedEnvelope when none match.
var ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")

type envelope struct {
	Data         json.RawMessage `json:"data"`
	TotalRecords int             `json:"totalRecords"`
}

// DecodeList unmarshals a list payload of any accepted envelope shape into
// out, which must be a pointer to a slice. The second return value is the
// envelope's totalRecords field, zero when absent.
func DecodeList(raw []byte, out any) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, ErrUnrecognizedEnvelope
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return 0, fmt.Errorf("failed unmarshaling list payload with error=%w", err)
		}
		return 0, nil
	}

	outer := envelope{}
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return 0, ErrUnrecognizedEnvelope
	}
	inner := bytes.TrimSpace(outer.Data)
	if len(inner) == 0 {
		return 0, ErrUnrecognizedEnvelope
	}

	if inner[0] == '[' {
		if err := json.Unmarshal(inner, out); err != nil {
			return 0, fmt.Errorf("failed unmarshaling list payload with error=%w", err)
		}
		return outer.TotalRecords, nil
	}

	nested := envelope{}
	if err := json.Unmarshal(inner, &nested); err != nil {
		return 0, ErrUnrecognizedEnvelope
	}
	innermost := bytes.TrimSpace(nested.Data)
	if len(innermost) == 0 || innermost[0] != '[' {
		return 0, ErrUnrecognizedEnvelope
	}
	if err := json.Unmarshal(innermost, out); err != nil {
		return 0, fmt.Errorf("failed unmarshaling list payload with error=%w", err)
	}
	return outer.TotalRecords, nil
}

// DecodeObject unmarshals a single-object payload, accepting either a bare
// object or one wrapped under "data".
func DecodeObject(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrUnrecognizedEnvelope
	}

	outer := envelope{}
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return ErrUnrecognizedEnvelope
	}
	if len(outer.Data) > 0 && !bytes.Equal(bytes.TrimSpace(outer.Data), []byte("null")) {
		inner := bytes.TrimSpace(outer.Data)
		if inner[0] != '{' {
			return ErrUnrecognizedEnvelope
		}
		if err := json.Unmarshal(inner, out); err != nil {
			return fmt.Errorf("failed unmarshaling object payload with error=%w", err)
		}
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed unmarshaling object payload with error=%w", err)
	}
	return nil
}

// DecodeNestedList accepts only the fixed {"data":{"data":[...]}} shape the
// hierarchy endpoint responds with.
func DecodeNestedList(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrUnrecognizedEnvelope
	}
	outer := envelope{}
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return ErrUnrecognizedEnvelope
	}
	nested := envelope{}
	if err := json.Unmarshal(outer.Data, &nested); err != nil {
		return ErrUnrecognizedEnvelope
	}
	innermost := bytes.TrimSpace(nested.Data)
	if len(innermost) == 0 || innermost[0] != '[' {
		return ErrUnrecognizedEnvelope
	}
	if err := json.Unmarshal(innermost, out); err != nil {
		return fmt.Errorf("failed unmarshaling list payload with error=%w", err)
	}
	return nil
}
