package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueName() string {
	return fmt.Sprintf("cozypomodoro-test-%d", time.Now().UnixNano())
}

func TestAcquireRejectsSecondTimer(t *testing.T) {
	name := uniqueName()

	first, err := Acquire(name)
	require.NoError(t, err)
	defer first.Release()

	second, err := Acquire(name)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Contains(t, err.Error(), first.Address())

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	third, err := Acquire(name)
	require.NoError(t, err)
	assert.Equal(t, first.Address(), third.Address())
	require.NoError(t, third.Release())
}

func TestRaiseReachesRunningTimer(t *testing.T) {
	name := uniqueName()
	lock, err := Acquire(name)
	require.NoError(t, err)

	raised := make(chan struct{}, 1)
	served := make(chan struct{})
	go func() {
		lock.Serve(func() { raised <- struct{}{} })
		close(served)
	}()

	require.NoError(t, Raise(name))
	select {
	case <-raised:
	case <-time.After(2 * time.Second):
		t.Fatal("running timer was not raised")
	}

	require.NoError(t, lock.Release())
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after Release")
	}
}

func TestRaiseWithoutRunningTimerFails(t *testing.T) {
	assert.Error(t, Raise(uniqueName()))
}

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("CozyPomodoro")

	assert.Equal(t, port, portFromName("CozyPomodoro"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)

	var lock *Lock
	assert.Empty(t, lock.Address())
	assert.NoError(t, lock.Release())
}
