package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"hejazi/internal/port"
)

type sesSender struct {
	client *sesv2.Client
	from   string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client: sesv2.NewFromConfig(cfg),
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
	}, nil
}

func (s *sesSender) SendViolationNotice(ctx context.Context, notice port.ViolationNotice) error {
	htmlBody := buildNoticeHTML(notice.Subject, notice.Body)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &types.Destination{
			ToAddresses: notice.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &notice.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &notice.Body},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildNoticeHTML(subject, body string) string {
	paragraphs := strings.Split(html.EscapeString(body), "\n")
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir="auto">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #9B1C1C;">%s</h2>
  <p>%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Hejazi SSD - Security Services Administration</p>
</body>
</html>`, html.EscapeString(subject), strings.Join(paragraphs, "<br>"))
}
