package refresh

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revbook/revbook-client/internal/api"
	"github.com/revbook/revbook-client/internal/config"
	"github.com/revbook/revbook-client/internal/entities"
	"github.com/revbook/revbook-client/internal/session"
)

type noopAPI struct{}

func (noopAPI) Signup(ctx context.Context, p api.SignupParams) (*api.AuthResult, error) {
	return nil, api.ValidationErr("not implemented")
}

func (noopAPI) Login(ctx context.Context, c api.Credentials) (*api.AuthResult, error) {
	return nil, api.ValidationErr("not implemented")
}

func (noopAPI) UserInfo(ctx context.Context, token string) (*entities.UserProfile, error) {
	return nil, api.ValidationErr("not implemented")
}

func (noopAPI) UserByID(ctx context.Context, id uint) (*entities.UserProfile, error) {
	return nil, api.ValidationErr("not implemented")
}

func (noopAPI) UpdateUser(ctx context.Context, token string, id uint, fields api.UserUpdate) (*entities.UserProfile, error) {
	return nil, api.ValidationErr("not implemented")
}

type emptyJar struct{}

func (emptyJar) Get(name string) (string, bool, error) { return "", false, nil }
func (emptyJar) Set(name, value string) error          { return nil }
func (emptyJar) Delete(name string) error              { return nil }

func newTestScheduler(t *testing.T, cfg config.Refresh) *Scheduler {
	t.Helper()
	sessions := session.New(noopAPI{}, emptyJar{}, nil, zerolog.Nop())
	return NewScheduler(sessions, cfg, zerolog.Nop())
}

func TestStartDisabledIsNoop(t *testing.T) {
	s := newTestScheduler(t, config.Refresh{Enabled: false, Schedule: "*/15 * * * *"})

	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.False(t, s.isRunning)

	// Stop on a never-started scheduler must not block.
	s.Stop()
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := newTestScheduler(t, config.Refresh{Enabled: true, Schedule: "not-a-schedule"})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.isRunning)
}

func TestStartAndStop(t *testing.T) {
	s := newTestScheduler(t, config.Refresh{Enabled: true, Schedule: "*/15 * * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.isRunning)

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.isRunning)

	// Stop is idempotent.
	s.Stop()
}

func TestContextCancellationStops(t *testing.T) {
	s := newTestScheduler(t, config.Refresh{Enabled: true, Schedule: "*/15 * * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	// The goroutine watching the context calls Stop; just make sure a
	// direct Stop afterwards does not deadlock.
	s.Stop()
}
