package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUserIP(t *testing.T) {
	cases := []struct {
		name          string
		remoteAddr    string
		realIP        string
		forwardedFor  string
		expectedIP    string
		expectedError bool
	}{
		{name: "remote addr with port", remoteAddr: "83.12.53.65:2145", expectedIP: "83.12.53.65"},
		{name: "remote addr ipv6", remoteAddr: "[::1]:8080", expectedIP: "::1"},
		{name: "real ip header wins", remoteAddr: "10.0.0.1:1234", realIP: "111.12.56.65", expectedIP: "111.12.56.65"},
		{name: "forwarded for first hop", remoteAddr: "10.0.0.1:1234", forwardedFor: "172.19.0.1, 10.0.0.2", expectedIP: "172.19.0.1"},
		{name: "real ip before forwarded", realIP: "1.2.3.4", forwardedFor: "5.6.7.8", expectedIP: "1.2.3.4"},
		{name: "forwarded for junk", remoteAddr: "10.0.0.1:1234", forwardedFor: "unknown", expectedIP: "10.0.0.1"},
		{name: "real ip junk", remoteAddr: "10.0.0.1:1234", realIP: "nope", forwardedFor: "5.6.7.8", expectedIP: "5.6.7.8"},
		{name: "garbage", remoteAddr: "not-an-ip", expectedError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/notes", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.realIP != "" {
				req.Header.Set("X-Real-Ip", tc.realIP)
			}
			if tc.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}

			ip, err := ReadUserIP(req)
			if tc.expectedError {
				require.Error(t, err)
				assert.Empty(t, ip)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedIP, ip)
		})
	}
}

func TestRemoteHost(t *testing.T) {
	req := httptest.NewRequest("GET", "/notes", nil)
	req.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1", RemoteHost(req))

	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", RemoteHost(req))
}
