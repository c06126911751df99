package alert

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"

	"unistay/internal/config"
	"unistay/internal/domain"
)

// Service notifies operators when a dispatch pass ends with failures.
type Service interface {
	SendFailureDigest(ctx context.Context, digest Digest) error
}

type Digest struct {
	Scope    string
	Result   domain.DispatchResult
	Failures []string
	At       time.Time
}

var digestTemplate = template.Must(template.New("digest").Parse(`<h2>UniStay SMS dispatch report</h2>
<p>Scope: {{.Scope}}<br>Time: {{.At.Format "2006-01-02 15:04:05 MST"}}</p>
<p>Processed: {{.Result.Processed}}, sent: {{.Result.Success}}, failed: {{.Result.Failed}}</p>
{{if .Failures}}<ul>{{range .Failures}}<li>{{.}}</li>{{end}}</ul>{{end}}`))

type service struct {
	client *resend.Client
	from   string
	to     string
}

// NewService returns a resend-backed alerter, or a no-op one when no API key
// or recipient is configured.
func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" || cfg.AlertEmail == "" {
		return noop{}
	}
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.FromEmail,
		to:     cfg.AlertEmail,
	}
}

func (s *service) SendFailureDigest(ctx context.Context, digest Digest) error {
	body, err := RenderDigest(digest)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("UniStay <%s>", s.from),
		To:      []string{s.to},
		Html:    body,
		Subject: fmt.Sprintf("SMS dispatch: %d of %d failed", digest.Result.Failed, digest.Result.Processed),
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func RenderDigest(digest Digest) (string, error) {
	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, digest); err != nil {
		return "", fmt.Errorf("failed to execute digest template: %w", err)
	}
	return body.String(), nil
}

type noop struct{}

func (noop) SendFailureDigest(context.Context, Digest) error { return nil }
