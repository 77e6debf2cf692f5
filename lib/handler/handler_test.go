package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHandler(t *testing.T) {
	h := NewDefaultHandler()

	tests := []struct {
		name    string
		desc    Descriptor
		wantErr bool
	}{
		{
			name: "valid descriptor",
			desc: Descriptor{Name: "test_config", Timeout: 30 * time.Second},
		},
		{
			name:    "empty name",
			desc:    Descriptor{Name: "", Timeout: 30 * time.Second},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			desc:    Descriptor{Name: "test_config", Timeout: 0},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			desc:    Descriptor{Name: "test_config", Timeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "both invalid",
			desc:    Descriptor{Name: "", Timeout: 0},
			wantErr: true,
		},
		{
			name: "smallest valid timeout",
			desc: Descriptor{Name: "tiny", Timeout: time.Nanosecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Handle(tt.desc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoopHandler(t *testing.T) {
	h := NewNoopHandler()

	assert.NoError(t, h.Handle(Descriptor{Name: "anything", Timeout: time.Second}))
	assert.NoError(t, h.Handle(Descriptor{}), "the noop handler admits even invalid descriptors")
}

func TestHandlerFunc(t *testing.T) {
	var seen Descriptor
	h := HandlerFunc(func(desc Descriptor) error {
		seen = desc
		return nil
	})

	desc := Descriptor{Name: "audit", Timeout: time.Minute}
	require.NoError(t, h.Handle(desc))
	assert.Equal(t, desc, seen)
}

func TestRuleHandler(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		desc    Descriptor
		wantErr bool
	}{
		{
			name:  "zero rules admit everything",
			rules: Rules{},
			desc:  Descriptor{},
		},
		{
			name:    "require name rejects empty name",
			rules:   Rules{RequireName: true},
			desc:    Descriptor{Timeout: time.Second},
			wantErr: true,
		},
		{
			name:  "require name admits named descriptor",
			rules: Rules{RequireName: true},
			desc:  Descriptor{Name: "named"},
		},
		{
			name:    "min timeout rejects below bound",
			rules:   Rules{MinTimeout: time.Minute},
			desc:    Descriptor{Name: "x", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:  "min timeout admits exactly at bound",
			rules: Rules{MinTimeout: time.Minute},
			desc:  Descriptor{Name: "x", Timeout: time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRuleHandler(tt.rules).Handle(tt.desc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("default", NewDefaultHandler))
	require.NoError(t, r.Register("noop", NewNoopHandler))

	// duplicate and invalid registrations fail
	assert.Error(t, r.Register("default", NewDefaultHandler))
	assert.Error(t, r.Register("", NewDefaultHandler))
	assert.Error(t, r.Register("nil-factory", nil))

	assert.Equal(t, []string{"default", "noop"}, r.Names())

	h, err := r.New("noop")
	require.NoError(t, err)
	assert.NoError(t, h.Handle(Descriptor{}))

	h, err = r.New("default")
	require.NoError(t, err)
	assert.Error(t, h.Handle(Descriptor{}))

	_, err = r.New("unknown")
	assert.Error(t, err)
}
