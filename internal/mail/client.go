package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/starlinemember/portfolio-website/config"
)

// TemplateParams is the fixed parameter set the mail template accepts. The
// destination address is configured on the service side, not per call.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ReplyTo   string `json:"reply_to"`
	ToEmail   string `json:"to_email"`
}

// Sender dispatches a templated message. Implementations must treat any
// non-success status from the provider as a hard failure.
type Sender interface {
	Send(ctx context.Context, params TemplateParams) error
}

// Client talks to an EmailJS-compatible send endpoint.
type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	toEmail    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg config.MailConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		toEmail:    cfg.ToEmail,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// Outbound sends are throttled so a burst of submissions cannot
		// exhaust the provider quota.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams TemplateParams `json:"template_params"`
}

func (c *Client) Send(ctx context.Context, params TemplateParams) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail throttle: %w", err)
	}

	if params.ToEmail == "" {
		params.ToEmail = c.toEmail
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	reqURL := c.baseURL + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
