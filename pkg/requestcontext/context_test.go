package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, Actor(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ctx = WithTime(WithActor(WithRequestID(ctx, "req-1"), "admin"), fixed)
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "admin", Actor(ctx))
	assert.Equal(t, fixed, Now(ctx))
}
