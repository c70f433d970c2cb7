package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvCredentials(t *testing.T) {
	ctx := context.Background()
	creds := DefaultEnvCredentials()

	t.Setenv("ANTHROPIC_API_KEY", "  sk-ant-123  ")
	t.Setenv("OPENAI_API_KEY", "")

	key, ok := creds.APIKey(ctx, SlugAnthropic)
	assert.True(t, ok)
	assert.Equal(t, "sk-ant-123", key)

	_, ok = creds.APIKey(ctx, SlugOpenAI)
	assert.False(t, ok)

	_, ok = creds.APIKey(ctx, SlugEcho)
	assert.False(t, ok)
}

func TestEnvCredentials_ReadOnEveryCall(t *testing.T) {
	ctx := context.Background()
	a := NewAnthropic(DefaultEnvCredentials(), ProviderSettings{})

	t.Setenv("ANTHROPIC_API_KEY", "")
	assert.False(t, a.HasCredentials(ctx))

	t.Setenv("ANTHROPIC_API_KEY", "rotated")
	assert.True(t, a.HasCredentials(ctx))
}

func TestStaticCredentials(t *testing.T) {
	creds := StaticCredentials{SlugOpenAI: "sk", SlugAnthropic: " "}

	key, ok := creds.APIKey(context.Background(), SlugOpenAI)
	assert.True(t, ok)
	assert.Equal(t, "sk", key)

	_, ok = creds.APIKey(context.Background(), SlugAnthropic)
	assert.False(t, ok)
}

func TestPacer(t *testing.T) {
	t.Run("nil pacer never blocks", func(t *testing.T) {
		var p *Pacer
		assert.Nil(t, NewPacer(0, 5))
		assert.NoError(t, p.Wait(context.Background()))
	})

	t.Run("burst then wait", func(t *testing.T) {
		p := NewPacer(1, 1)
		require.NotNil(t, p)
		require.NoError(t, p.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, p.Wait(ctx))
	})
}
