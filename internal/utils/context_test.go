package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-service-template/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "requestContext", RequestContextCtxKey.String())
}

func TestGetRequestContext(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		rc, ok := GetRequestContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, rc.RequestID)
		assert.Empty(t, GetRequestIDFromContext(context.Background()))
	})

	t.Run("present", func(t *testing.T) {
		want := models.RequestContext{
			RequestID: "rid",
			Subject:   "user-1",
			ClientIP:  "10.0.0.1",
			UserAgent: "curl/8",
		}
		ctx := WithRequestContext(context.Background(), want)

		got, ok := GetRequestContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, "rid", GetRequestIDFromContext(ctx))
	})

	t.Run("wrong type under key is ignored", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestContextCtxKey, "not a request context")
		_, ok := GetRequestContext(ctx)
		assert.False(t, ok)
	})
}

func TestNewResponse_BindsRequestID(t *testing.T) {
	t.Run("request id from context", func(t *testing.T) {
		ctx := WithRequestContext(context.Background(), models.RequestContext{RequestID: "inbound-7"})

		r := NewResponse[map[string]string](ctx).WithData(map[string]string{"hello": "world"})
		assert.Equal(t, "inbound-7", r.RequestID)
	})

	t.Run("no request id generates one", func(t *testing.T) {
		r := NewResponse[any](context.Background())
		_, err := uuid.Parse(r.RequestID)
		assert.NoError(t, err)
	})
}
