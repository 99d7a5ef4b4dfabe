package doofinder

import (
	"io"
	"net/http"
)

// maxResponseBytes bounds response reads; search responses are small, the cap
// guards against a misbehaving endpoint.
const maxResponseBytes = 4 << 20

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes)) //nolint:wrapcheck // caller wraps
}
