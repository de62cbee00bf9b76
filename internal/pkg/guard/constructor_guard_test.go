package guard_test

import (
	"errors"
	"sync"
	"testing"

	"donations/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCommandNotConstructed = errors.New("designate command must be created via its constructor")

// designateCommand mirrors how commands embed the guard.
type designateCommand struct {
	packageID string
	quantity  int
	guard     guard.ConstructorGuard
}

func newDesignateCommand(packageID string, quantity int) (designateCommand, error) {
	if packageID == "" {
		return designateCommand{}, errors.New("package id is required")
	}
	if quantity <= 0 {
		return designateCommand{}, errors.New("quantity must be positive")
	}
	return designateCommand{packageID: packageID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c designateCommand) validate() error {
	return c.guard.Validate(errCommandNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		given   error
		wantErr error
	}{
		{"constructed with custom error", guard.NewConstructorGuard(), errCommandNotConstructed, nil},
		{"constructed with nil error", guard.NewConstructorGuard(), nil, nil},
		{"zero value with custom error", guard.ConstructorGuard{}, errCommandNotConstructed, errCommandNotConstructed},
		{"zero value with nil error", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.given)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	t.Run("built through constructor", func(t *testing.T) {
		cmd, err := newDesignateCommand("pkg-1", 2)
		require.NoError(t, err)
		require.NoError(t, cmd.validate())
		assert.Equal(t, 2, cmd.quantity)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var cmd designateCommand
		require.ErrorIs(t, cmd.validate(), errCommandNotConstructed)
	})

	t.Run("constructor rejects bad input", func(t *testing.T) {
		_, err := newDesignateCommand("", 1)
		require.EqualError(t, err, "package id is required")

		_, err = newDesignateCommand("pkg-1", 0)
		require.EqualError(t, err, "quantity must be positive")
	})

	t.Run("copies keep the mark", func(t *testing.T) {
		cmd, err := newDesignateCommand("pkg-1", 1)
		require.NoError(t, err)
		cp := cmd
		require.NoError(t, cp.validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.NoError(t, g.Validate(errCommandNotConstructed))
			}
		}()
	}
	wg.Wait()
}

func TestErrDefaultConstructorGuard(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
