package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

const messagePath = "/message"

type httpTransport struct {
	gatewayURL string
	token      string
	hc         *http.Client
}

// NewHTTPTransport posts messages straight to the gateway. token may be empty.
func NewHTTPTransport(gatewayURL, token string, hc *http.Client) *httpTransport {
	if hc == nil {
		hc = &http.Client{}
	}
	return &httpTransport{
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		token:      token,
		hc:         hc,
	}
}

func (t *httpTransport) Name() string { return "http" }

func (t *httpTransport) Deliver(ctx context.Context, channel, text, media string) error {
	body, err := json.Marshal(newMessage(channel, text, media))
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	url := t.gatewayURL + messagePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &domain.DispatchError{Transport: t.Name(), Err: fmt.Errorf("creating HTTP request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	slog.DebugContext(ctx, "Posting message to gateway", "url", url, "channel", channel)

	resp, err := t.hc.Do(req)
	if err != nil {
		return &domain.DispatchError{
			Transport: t.Name(),
			Err:       &domain.TransportError{Err: fmt.Errorf("executing HTTP request: %w", err)},
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &domain.DispatchError{Transport: t.Name(), StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
