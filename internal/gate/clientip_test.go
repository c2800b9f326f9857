package gate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "forwarded for single entry",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "203.0.113.7",
		},
		{
			name:    "forwarded for takes first entry",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			want:    "203.0.113.7",
		},
		{
			name: "forwarded for wins over real ip",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "198.51.100.4",
			},
			want: "203.0.113.7",
		},
		{
			name: "real ip wins over client ip",
			headers: map[string]string{
				"X-Real-IP":   "198.51.100.4",
				"X-Client-IP": "192.0.2.9",
			},
			want: "198.51.100.4",
		},
		{
			name:    "client ip as last resort",
			headers: map[string]string{"X-Client-IP": "192.0.2.9"},
			want:    "192.0.2.9",
		},
		{
			name:    "no headers",
			headers: nil,
			want:    "0.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			for k, v := range tt.headers {
				headers.Set(k, v)
			}
			assert.Equal(t, tt.want, ResolveClientIP(headers))
		})
	}
}
