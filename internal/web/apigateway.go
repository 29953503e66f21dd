package web

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayHandler adapts an http.Handler to API Gateway REST proxy events,
// so the same router serves both the long-running server and Lambda.
func APIGatewayHandler(h http.Handler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := requestFromEvent(ctx, ev)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		resp := events.APIGatewayProxyResponse{
			StatusCode:        rec.Code,
			Headers:           make(map[string]string, len(rec.Header())),
			MultiValueHeaders: map[string][]string(rec.Header().Clone()),
			Body:              rec.Body.String(),
		}
		for k, v := range rec.Header() {
			if len(v) > 0 {
				resp.Headers[k] = v[0]
			}
		}
		return resp, nil
	}
}

func requestFromEvent(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	body := ev.Body
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, fmt.Errorf("decode base64 body: %w", err)
		}
		body = string(decoded)
	}

	q := url.Values{}
	for k, vs := range ev.MultiValueQueryStringParameters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	for k, v := range ev.QueryStringParameters {
		if _, ok := q[k]; !ok {
			q.Set(k, v)
		}
	}

	u := &url.URL{Path: ev.Path, RawQuery: q.Encode()}
	req, err := http.NewRequestWithContext(ctx, ev.HTTPMethod, u.String(), strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request from event: %w", err)
	}

	for k, vs := range ev.MultiValueHeaders {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, v := range ev.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	if ip := ev.RequestContext.Identity.SourceIP; ip != "" {
		req.RemoteAddr = net.JoinHostPort(ip, "0")
	}
	if ev.RequestContext.RequestID != "" && req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", ev.RequestContext.RequestID)
	}
	return req, nil
}
