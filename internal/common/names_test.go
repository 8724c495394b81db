package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dotted", "Microsoft.Framework.TestEvents.NumberOne", "NumberOne"},
		{"plain", "TestEvent", "TestEvent"},
		{"empty", "", ""},
		{"trailing separator", "a.b.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastSegment(tt.in))
		})
	}
}
