package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := Message[VersionIngestedPayload]{
		Header: NewEventHeader(TopicVersionIngested, WithTraceID("trace-1")),
		Payload: VersionIngestedPayload{
			Version: VersionRef{
				TenantID:    "t1",
				ObjectID:    "o1",
				VersionID:   "v1",
				ContentHash: "abc",
			},
			UploadID: "u1",
		},
	}

	data, err := Encode(env)
	require.NoError(t, err)

	got, err := Decode[VersionIngestedPayload](data)
	require.NoError(t, err)

	assert.Equal(t, TopicVersionIngested, got.Header.Topic)
	assert.Equal(t, "trace-1", got.Header.TraceID)
	assert.Equal(t, DefaultProducer, got.Header.Producer)
	assert.Equal(t, env.Payload, got.Payload)
}

func TestNewWatermillMessage(t *testing.T) {
	msg, err := NewWatermillMessage(TopicDuplicateDetected, DuplicateDetectedPayload{
		TenantID: "t1",
		GroupID:  "g1",
		Reason:   "exact",
		Members:  []string{"v1", "v2"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.UUID)
	assert.Equal(t, TopicDuplicateDetected, msg.Metadata.Get("topic"))
	assert.Equal(t, PayloadVersionV1, msg.Metadata.Get("version"))

	env, err := ParseWatermillMessage[DuplicateDetectedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "g1", env.Payload.GroupID)
	assert.Equal(t, []string{"v1", "v2"}, env.Payload.Members)
}
