package predictionguard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Timestamp
		wantErr bool
	}{
		{name: "number", input: `1716927842`, want: 1716927842},
		{name: "numeric string", input: `"1716927842"`, want: 1716927842},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "garbage string", input: `"yesterday"`, wantErr: true},
		{name: "float", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimestamp_EncodesAsNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		Created Timestamp `json:"created"`
	}{Created: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"created":42}`, string(b))
	assert.Equal(t, time.Unix(42, 0), Timestamp(42).Time())
}

func TestMergeInput(t *testing.T) {
	prev := &RequestInput{BlockPromptInjection: false, PII: "replace", PIIReplaceMethod: ReplaceMask}

	got := mergeInput(prev, true, nil)
	assert.Equal(t, &RequestInput{BlockPromptInjection: true, PII: "replace", PIIReplaceMethod: ReplaceMask}, got)
	assert.False(t, prev.BlockPromptInjection, "previous input must not change")

	got = mergeInput(nil, false, &PIIOption{Mode: "replace", Method: ReplaceFake})
	assert.Equal(t, &RequestInput{PII: "replace", PIIReplaceMethod: ReplaceFake}, got)
}
