package model

import "encoding/json"

// Envelope is the uniform result shape every caller receives: exactly
// one of Data or Error is populated, plus a numeric status the UI can
// branch on.
type Envelope struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status"`
}

// OK reports whether the envelope carries a success payload
func (e *Envelope) OK() bool {
	return e.Error == "" && e.Status >= 200 && e.Status < 300
}

// Decode unmarshals the success payload into v
func (e *Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}
