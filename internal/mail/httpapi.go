package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// apiTransport posts the rendered mail to an HTTP email provider with
// bearer auth. Plain net/http is enough here: the provider contract is
// a single JSON POST.
type apiTransport struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func newAPITransport(cfg Config) (*apiTransport, error) {
	if cfg.APIEndpoint == "" {
		return nil, fmt.Errorf("MAIL_API_ENDPOINT is required for the api transport")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("MAIL_API_KEY is required for the api transport")
	}
	return &apiTransport{
		endpoint: cfg.APIEndpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.APITimeout},
	}, nil
}

const maxErrorBody = 256

func (t *apiTransport) Send(ctx context.Context, msg Message) error {
	payload := map[string]string{
		"from":    fmt.Sprintf("%s <%s>", msg.FromName, msg.FromAddress),
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
		"text":    msg.Text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("mail api returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
