package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recipehub/internal/common"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "a@x.com", want: "a@x.com"},
		{in: "  Ann.Lee@Mail.Example.ORG ", want: "ann.lee@mail.example.org"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "a@", wantErr: true},
		{in: "a@x.", wantErr: true},
		{in: "a@.com", wantErr: true},
		{in: "a b@x.com", wantErr: true},
		{in: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireText(t *testing.T) {
	v, err := requireText("name", "  Soup ", 10)
	require.NoError(t, err)
	assert.Equal(t, "Soup", v)

	_, err = requireText("name", " ", 10)
	require.ErrorIs(t, err, common.ErrInvalidInput)

	// Limits count runes, not bytes.
	v, err = requireText("name", "ñññ", 3)
	require.NoError(t, err)
	assert.Equal(t, "ñññ", v)

	_, err = requireText("name", "ññññ", 3)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("7c9e6679-7425-40de-944b-e07fc1f90ae7"))
	assert.False(t, validID(""))
	assert.False(t, validID("42"))
}

func TestInternalError(t *testing.T) {
	err := internalError("user lookup failed", errBoom)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, errBoom)
	assert.Equal(t, "internal error: user lookup failed", err.Error())

	err = internalError("password hash failed", fmt.Errorf("acquire: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = internalError("list failed", context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
