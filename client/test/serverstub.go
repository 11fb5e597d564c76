package test

import (
	"net/http"
	"net/http/httptest"
)

const Token = "test-token"

type stubbedResponse struct {
	status int
	body   []byte
}

// ChronicServer is a scriptable stand-in for the chronic backend. Responses
// are registered per method and path; unregistered routes return 404 with
// the backend's error envelope shape.
type ChronicServer struct {
	*httptest.Server
	responses map[string]stubbedResponse
	requests  []*http.Request
}

func (c *ChronicServer) Respond(method, path string, status int, body []byte) {
	if c.responses == nil {
		c.responses = make(map[string]stubbedResponse)
	}
	c.responses[method+" "+path] = stubbedResponse{status: status, body: body}
}

// Requests returns the requests received so far, oldest first.
func (c *ChronicServer) Requests() []*http.Request {
	return c.requests
}

func (c *ChronicServer) LastRequest() *http.Request {
	if len(c.requests) == 0 {
		return nil
	}
	return c.requests[len(c.requests)-1]
}

func ServerStub() *ChronicServer {
	chronic := &ChronicServer{}
	chronic.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chronic.requests = append(chronic.requests, r.Clone(r.Context()))
		if response, ok := chronic.responses[r.Method+" "+r.URL.Path]; ok {
			w.Header().Add("content-type", "application/json")
			w.WriteHeader(response.status)
			w.Write(response.body)
			return
		}
		w.Header().Add("content-type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"not found"}}`))
	}))
	return chronic
}
