package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errCartEmpty := Validation("cart is empty")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "sentinel", err: errCartEmpty, want: KindValidation},
		{name: "wrapped with fmt", err: fmt.Errorf("submit: %w", errCartEmpty), want: KindValidation},
		{name: "wrap helper", err: Wrap(External("payment gateway failed"), errors.New("timeout")), want: KindExternalDependency},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, KindOf(testCase.err))
		})
	}
}

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	sentinel := NotFound("order not found")
	cause := errors.New("record not found")

	err := Wrap(sentinel, cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "order not found: record not found", err.Error())
	assert.NotErrorIs(t, err, NotFound("address book not found"))
}
