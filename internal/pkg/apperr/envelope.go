package apperr

import "encoding/json"

// envelope is the wire form of an error's code and message. Both fields are
// nullable strings; an absent value is encoded as JSON null.
type envelope struct {
	Errorcode *string `json:"errorcode"`
	Errormsg  *string `json:"errormsg"`
}

// Render serializes a (code, message) pair into the canonical two-key JSON
// envelope. The empty string is treated as absent and renders as null. The
// output is deterministic: identical input always yields byte-identical JSON,
// so the rendered string is safe to log, compare, and put on the wire.
func Render(code, msg string) string {
	var env envelope
	if code != "" {
		env.Errorcode = &code
	}
	if msg != "" {
		env.Errormsg = &msg
	}

	// Marshal of a struct with two *string fields cannot fail.
	b, err := json.Marshal(env)
	if err != nil {
		return `{"errorcode":null,"errormsg":null}`
	}
	return string(b)
}

// ParseEnvelope reads a rendered envelope back into its (code, message) pair.
// JSON null maps back to the empty string.
func ParseEnvelope(s string) (code, msg string, err error) {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return "", "", err
	}
	if env.Errorcode != nil {
		code = *env.Errorcode
	}
	if env.Errormsg != nil {
		msg = *env.Errormsg
	}
	return code, msg, nil
}
