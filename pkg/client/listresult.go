package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageMeta carries server-side pagination metadata when the API includes
// it. Most list endpoints do not; callers must treat it as optional.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// normalizeList reduces the API's list envelope variants to one canonical
// form: the raw JSON array of items plus optional pagination metadata.
// Observed shapes:
//
//	[...]
//	{"data": [...]}
//	{"data": {"items": [...], "page": 1, "total": 42, ...}}
func normalizeList(raw []byte) (json.RawMessage, *PageMeta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), nil, nil
	}

	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, nil, fmt.Errorf("unexpected list response shape: %w", err)
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return json.RawMessage("[]"), nil, nil
	}

	if data[0] == '[' {
		return json.RawMessage(data), nil, nil
	}

	var paged struct {
		Items json.RawMessage `json:"items"`
		PageMeta
	}
	if err := json.Unmarshal(data, &paged); err != nil {
		return nil, nil, fmt.Errorf("unexpected list response shape: %w", err)
	}
	if paged.Items == nil {
		return nil, nil, fmt.Errorf("unexpected list response shape: no items array")
	}
	meta := paged.PageMeta
	return paged.Items, &meta, nil
}

// unwrapEnvelope strips a {"data": {...}} wrapper from a single-entity
// response, passing any other shape through untouched.
func unwrapEnvelope(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return trimmed
	}
	return data
}
