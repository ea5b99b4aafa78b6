package predictionguard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Role identifies the author of a chat message.
type Role string

// Chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Timestamp is a creation time in Unix seconds.
//
// Most endpoints send it as a JSON number; injection and PII send it as a
// numeric string. Both decode to the same value, and it always encodes as
// a number.
type Timestamp int64

// UnmarshalJSON accepts a number, a numeric string or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*t = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		*t = Timestamp(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	*t = Timestamp(n)
	return nil
}

// Time converts the timestamp to a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// ContentPart is one element of a vision message: either text or an image.
type ContentPart struct {
	// Type is "text" or "image_url".
	Type string `json:"type"`

	Text string `json:"text,omitempty"`

	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference. The service accepts base64 data
// URIs, see ImageDataURI.
type ImageURL struct {
	URL string `json:"url"`
}

const (
	contentTypeText     = "text"
	contentTypeImageURL = "image_url"
)

// RequestInput screens a prompt before it reaches the model.
type RequestInput struct {
	BlockPromptInjection bool          `json:"block_prompt_injection"`
	PII                  string        `json:"pii,omitempty"`
	PIIReplaceMethod     ReplaceMethod `json:"pii_replace_method,omitempty"`
}

// RequestOutput screens the generated text.
type RequestOutput struct {
	Factuality bool `json:"factuality"`
	Toxicity   bool `json:"toxicity"`
}

// PIIOption selects PII handling for a prompt. Mode is the action the
// service takes, typically "replace"; Method selects the replacement.
type PIIOption struct {
	Mode   string
	Method ReplaceMethod
}

// mergeInput returns a fresh RequestInput built from prev (which may be nil)
// with block set and, when pii is non-nil, the PII fields replaced.
// prev is never modified.
func mergeInput(prev *RequestInput, block bool, pii *PIIOption) *RequestInput {
	var in RequestInput
	if prev != nil {
		in = *prev
	}
	in.BlockPromptInjection = block
	if pii != nil {
		in.PII = pii.Mode
		in.PIIReplaceMethod = pii.Method
	}
	return &in
}

// first returns the first element of s.
func first[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[0], true
}
