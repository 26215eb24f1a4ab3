//go:build integration

// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/zhengtingxue/dinky/core"
)

// eventTimeout is the maximum time to wait for a call to finish
const eventTimeout = 10 * time.Second

// errTimeOut is an error for when an event did not finish within the expected time.
var errTimeOut = fmt.Errorf("event did not finish within %v", eventTimeout)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// GetResult executes the statement on the connection and waits for the
// archived result. It returns rows, field names and all observed states.
func GetResult(t *testing.T, c *core.Connection, statement string) ([]core.Row, []string, []core.CallState, error) {
	t.Helper()

	var (
		mu     sync.Mutex
		states []core.CallState
	)

	call := c.Execute(statement, func(state core.CallState, _ *core.Call) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	select {
	case <-call.Done():
	case <-time.After(eventTimeout):
		return nil, nil, nil, errTimeOut
	}

	if err := call.Err(); err != nil {
		return nil, nil, states, err
	}

	result, err := call.GetResult()
	require.NoError(t, err)
	rows, err := result.Rows(0, -1)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	return rows, result.Schema().FieldNames(), states, nil
}

// GetResultWithCancel executes the statement and cancels the call
// as soon as the first state is received.
func GetResultWithCancel(t *testing.T, c *core.Connection, statement string) ([]core.CallState, error) {
	t.Helper()

	var (
		mu     sync.Mutex
		states []core.CallState
	)

	call := c.Execute(statement, func(state core.CallState, c *core.Call) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
		c.Cancel()
	})

	select {
	case <-call.Done():
		mu.Lock()
		defer mu.Unlock()
		return states, nil
	case <-time.After(eventTimeout):
		return nil, errTimeOut
	}
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	return os.Open(filepath.Join(testDataPath, filename))
}
