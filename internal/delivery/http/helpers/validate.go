package helpers

import (
	"encoding/json"
	"net/http"
)

// FieldErrors maps a request field to its validation failure message. All
// failing fields are reported together rather than stopping at the first.
type FieldErrors map[string]string

// Validator is implemented by request DTOs that support validation.
// Validate returns one message per failing field; an empty map means valid.
type Validator interface {
	Validate() FieldErrors
}

// DecodeAndValidate decodes the request body into dest (with
// DisallowUnknownFields) and, if dest implements Validator, runs Validate().
// A decode failure writes a 400 with the decoder's message; a validation
// failure writes a 400 whose error carries the per-field messages. Callers
// should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if fields := v.Validate(); len(fields) > 0 {
			WriteJSONFieldErrors(w, fields)
			return false
		}
	}
	return true
}
