package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

type MailConfig struct {
	URL       string
	Token     string
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	Timeout   time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before a trial request.
	OpenTimeout time.Duration
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type mailRequest struct {
	From    address   `json:"from"`
	To      []address `json:"to"`
	Subject string    `json:"subject"`
	Text    string    `json:"text"`
	HTML    string    `json:"html"`
}

// Mailer sends notifications through an HTTP mail API.
type Mailer struct {
	httpClient *http.Client
	cfg        MailConfig
	breaker    *gobreaker.CircuitBreaker[interface{}]
	logger     *slog.Logger
}

func NewMailer(cfg MailConfig, logger *slog.Logger) *Mailer {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "mail-api",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Mailer{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		breaker:    breaker,
		logger:     logger,
	}
}

func (m *Mailer) Notify(ctx context.Context, subject, text, html string) error {
	body, err := json.Marshal(mailRequest{
		From:    address{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		To:      []address{{Email: m.cfg.ToEmail, Name: m.cfg.ToName}},
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	_, err = m.breaker.Execute(func() (interface{}, error) {
		return nil, m.send(ctx, body)
	})
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Debug("mail sent", "subject", subject)
	return nil
}

func (m *Mailer) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.Token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
