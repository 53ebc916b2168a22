package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_LIFOOrder(t *testing.T) {
	c := NewCloser(0)
	var order []string

	c.Add("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	c.Add("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestClose_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add("broken", func(ctx context.Context) error {
		return errors.New("close failed")
	})
	c.Add("ok", func(ctx context.Context) error {
		return nil
	})

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestClose_OnlyOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.Add("counter", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestClose_ForcesSlowResources(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)
	c.Add("slow", func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forcibly")
}
