package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hivelvet/internal/privilege/domain"
	"github.com/allisson/hivelvet/internal/privilege/usecase"
	usecaseMocks "github.com/allisson/hivelvet/internal/privilege/usecase/mocks"
)

func TestCachedDiscoveryUseCase(t *testing.T) {
	ctx := context.Background()
	registry := domain.Registry{{Group: "Roles", Name: "Create"}}

	t.Run("Success_ScansOnce", func(t *testing.T) {
		next := &usecaseMocks.MockDiscoveryUseCase{}
		next.On("Discover", mock.Anything).Return(registry, nil).Once()
		uc := usecase.NewCachedDiscoveryUseCase(next)

		for range 3 {
			got, err := uc.Discover(ctx)
			require.NoError(t, err)
			assert.Equal(t, registry, got)
		}
		next.AssertExpectations(t)
	})

	t.Run("Success_ReturnsCopies", func(t *testing.T) {
		next := &usecaseMocks.MockDiscoveryUseCase{}
		next.On("Discover", mock.Anything).Return(domain.Registry{{Group: "Roles", Name: "Create"}}, nil).Once()
		uc := usecase.NewCachedDiscoveryUseCase(next)

		got, err := uc.Discover(ctx)
		require.NoError(t, err)
		got[0].Name = "Mutated"

		again, err := uc.Discover(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Create", again[0].Name)
	})

	t.Run("Error_NotCached", func(t *testing.T) {
		next := &usecaseMocks.MockDiscoveryUseCase{}
		next.On("Discover", mock.Anything).Return(nil, domain.ErrDiscovery).Once()
		next.On("Discover", mock.Anything).Return(registry, nil).Once()
		uc := usecase.NewCachedDiscoveryUseCase(next)

		_, err := uc.Discover(ctx)
		assert.ErrorIs(t, err, domain.ErrDiscovery)

		got, err := uc.Discover(ctx)
		require.NoError(t, err)
		assert.Equal(t, registry, got)
		next.AssertExpectations(t)
	})

	t.Run("Success_Invalidate", func(t *testing.T) {
		updated := domain.Registry{{Group: "Roles", Name: "Create"}, {Group: "Roles", Name: "Delete"}}
		next := &usecaseMocks.MockDiscoveryUseCase{}
		next.On("Discover", mock.Anything).Return(registry, nil).Once()
		next.On("Discover", mock.Anything).Return(updated, nil).Once()
		uc := usecase.NewCachedDiscoveryUseCase(next)

		got, err := uc.Discover(ctx)
		require.NoError(t, err)
		assert.Equal(t, registry, got)

		uc.Invalidate()

		got, err = uc.Discover(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
		next.AssertExpectations(t)
	})

	t.Run("Success_ConcurrentMissesShareScan", func(t *testing.T) {
		release := make(chan struct{})
		next := &usecaseMocks.MockDiscoveryUseCase{}
		next.On("Discover", mock.Anything).
			WaitUntil(time.After(50*time.Millisecond)).
			Return(registry, nil).
			Once()
		uc := usecase.NewCachedDiscoveryUseCase(next)

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-release
				got, err := uc.Discover(ctx)
				if err == nil && len(got) != 1 {
					err = errors.New("unexpected registry")
				}
				errs <- err
			}()
		}
		close(release)
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		next.AssertExpectations(t)
	})
}
