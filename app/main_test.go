package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/admax/app/persist"
)

func Test_makeHostName(t *testing.T) {
	opts.Web.HostName = "test"
	assert.Equal(t, "test", makeHostName())

	opts.Web.HostName = ""
	exp, err := os.Hostname()
	require.NoError(t, err)
	assert.Equal(t, exp, makeHostName())
}

func Test_setupLogsToStdout(t *testing.T) {
	opts.Log.Enabled = false
	assert.Equal(t, os.Stdout, setupLogs())
}

func Test_setupLogsToFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	opts.Log.Enabled = true
	opts.Log.Filename = tmpfile.Name()
	opts.Log.MaxSize = 100
	opts.Log.MaxBackups = 7
	opts.Log.MaxAge = 0
	opts.Log.EnabledCompress = false
	defer func() { opts.Log.Enabled = false; setupLogs() }()

	out := setupLogs()
	assert.IsType(t, &lumberjack.Logger{}, out)

	logger := out.(*lumberjack.Logger)
	assert.Equal(t, tmpfile.Name(), logger.Filename)
	assert.Equal(t, 100, logger.MaxSize)
	assert.Equal(t, 7, logger.MaxBackups)
	assert.Equal(t, 0, logger.MaxAge)
	assert.False(t, logger.Compress)
}

func Test_makeStorage(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		opts.State.Type = "file"
		opts.State.Location = filepath.Join(dir, "state")
		storage, closeFn, err := makeStorage()
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &persist.FileStorage{}, storage)
	})

	t.Run("sqlite", func(t *testing.T) {
		opts.State.Type = "sqlite"
		opts.State.DB = filepath.Join(dir, "db", "admax.db")
		storage, closeFn, err := makeStorage()
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &persist.SQLiteStorage{}, storage)

		require.NoError(t, storage.Save("k1", []byte("v1")))
		data, err := storage.Load("k1")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(data))
	})
}

func Test_printSchema(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, printSchema(&buf))

	var schema map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Contains(t, buf.String(), "refresh")
	assert.Contains(t, buf.String(), "polling")
}

func Test_runRequiresServiceURL(t *testing.T) {
	opts.API.URL = ""
	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service url is required")
}

func Test_runBadConfig(t *testing.T) {
	opts.API.URL = "http://127.0.0.1:1"
	defer func() { opts.API.URL = "" }()
	opts.Config = filepath.Join(t.TempDir(), "missing.yml")
	defer func() { opts.Config = "" }()

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func Test_runAndStop(t *testing.T) {
	dir := t.TempDir()
	opts.API.URL = "http://127.0.0.1:1" // nothing listens, accounts load fails and is logged
	opts.API.Retries = 1
	opts.API.Timeout = 100 * time.Millisecond
	opts.State.Type = "file"
	opts.State.Location = dir
	opts.Web.Address = "127.0.0.1:0"
	defer func() { opts.API.URL = "" }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}
