package models

import "encoding/json"

// Envelope is the wire shape every data capability returns: a success flag
// plus either a payload or an error message. The payload schema is not
// enforced; it is echoed into the completion prompt as-is.
type Envelope struct {
	Success bool   `json:"success"`
	Symbol  string `json:"symbol,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OkEnvelope marshals a success envelope with extra payload fields merged in.
func OkEnvelope(symbol string, payload map[string]any) string {
	body := map[string]any{
		"success": true,
	}
	if symbol != "" {
		body["symbol"] = symbol
	}
	for k, v := range payload {
		body[k] = v
	}
	data, err := json.Marshal(body)
	if err != nil {
		return ErrEnvelope(symbol, err.Error())
	}
	return string(data)
}

// ErrEnvelope marshals a failure envelope.
func ErrEnvelope(symbol, msg string) string {
	body := map[string]any{
		"success": false,
		"error":   msg,
	}
	if symbol != "" {
		body["symbol"] = symbol
	}
	data, _ := json.Marshal(body)
	return string(data)
}
