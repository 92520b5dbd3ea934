// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/ronamap/pkg/core/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSONWithContextAttrs(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	require.NoError(t, log.Setup(&buf, "debug", "json"))

	ctx := log.WithAttrs(context.Background(), slog.String("run", "r1"))
	log.Debug(ctx, "parsed", slog.Int("samples", 2), log.Err("err", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "parsed", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "r1", rec["run"])
	assert.Equal(t, float64(2), rec["samples"])
	assert.Equal(t, "no-error", rec["err"])
}

func TestSetupLevelFilters(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	require.NoError(t, log.Setup(&buf, "warn", "text"))
	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
	log.Error(context.Background(), "shown", log.Err("err", errors.New("x")))
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "err=x")
}

func TestSetupRejectsUnknownValues(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	assert.Error(t, log.Setup(&buf, "loud", "text"))
	assert.Error(t, log.Setup(&buf, "info", "xml"))
}
