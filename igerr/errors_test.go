package igerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   []byte
		want   Kind
		isNil  bool
	}{
		{"ok", 200, nil, 0, true},
		{"created", 201, nil, 0, true},
		{"accepted", 202, nil, 0, true},
		{"unauthorized", 401, nil, KindUnauthorized, false},
		{"not_found", 404, nil, KindNotFound, false},
		{"too_many_requests", 429, nil, KindRateLimitExceeded, false},
		{"forbidden_plain", 403, []byte(`{"errorCode":"error.public-api.failure.pending-deal-reference"}`), KindUnauthorized, false},
		{"forbidden_allowance", 403, []byte(`{"errorCode":"error.public-api.exceeded-api-key-allowance"}`), KindRateLimitExceeded, false},
		{"teapot", 418, nil, KindUnexpected, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromStatus(tc.status, tc.body)
			if tc.isNil {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, tc.want, err.Kind)
				assert.Equal(t, tc.status, err.Status)
			}
		})
	}
}

func TestErrorIsBySentinel(t *testing.T) {
	err := FromStatus(401, nil)
	assert.True(t, errors.Is(err, Unauthorized))
	assert.False(t, errors.Is(err, NotFound))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := New(KindDecode, "bad body", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "bad body")
	assert.Contains(t, wrapped.Error(), "boom")
}
