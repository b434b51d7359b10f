package app_test

import (
	"context"
	"testing"
	"time"

	"rocketcart/internal/app"
	"rocketcart/internal/handlers/cart/mocks"
	"rocketcart/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStop(t *testing.T) {
	application := app.New(slogdiscard.NewDiscardLogger(), 0, time.Second, time.Second, new(mocks.Service), new(mocks.Feed))

	errCh := make(chan error, 1)
	go func() { errCh <- application.Run() }()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, application.Stop(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
