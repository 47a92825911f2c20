package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"leafcheck/internal/domain/entity"
	"leafcheck/internal/infrastructure/describe"
	"leafcheck/internal/infrastructure/storage"
	"leafcheck/internal/infrastructure/vision"
)

func TestNew_SharesUserService(t *testing.T) {
	c := New(
		storage.NewMemoryUserRepository(),
		vision.NewAnalyzer(entity.DefaultThresholds(), 5, 1024),
		describe.NewTextDescriber(),
		nil,
	)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.InspectionService)

	ctx := context.Background()
	_, err := c.UserService.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)

	// Битое изображение: ошибка анализа, но состояние сбрасывается через общий UserService
	_, err = c.InspectionService.ProcessLeafPhoto(ctx, 1, 10, []byte("not an image"))
	require.ErrorIs(t, err, entity.ErrLoadFailure)

	user, err := c.UserService.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}
