package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESSender creates an SES-backed EmailSender that delivers rejection
// notices to the configured operator address.
func NewSESSender(region, fromAddress, fromName, toAddress string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (s *sesSender) SendRejectionNotice(ctx context.Context, ingestion *domain.Ingestion) error {
	subject := fmt.Sprintf("Bill document rejected: %s", ingestion.FileName)
	htmlBody := buildRejectionHTML(ingestion)
	textBody := fmt.Sprintf(
		"Document %s was rejected during ingestion.\n\nStage: %s\nReason: %s\nRaw value: %s\nIngestion ID: %s\n\nThe original scan was archived at s3://%s/%s for manual correction.",
		ingestion.FileName, ingestion.Stage, ingestion.Reason, ingestion.RawValue,
		ingestion.ID, ingestion.S3Bucket, ingestion.S3Key,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRejectionHTML(ingestion *domain.Ingestion) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Bill document rejected</h2>
  <p>Document <strong>%s</strong> could not be converted into a payment record.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Stage</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Reason</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Raw value</td><td><code>%s</code></td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Ingestion</td><td>%s</td></tr>
  </table>
  <p style="color: #999; font-size: 12px;">The original scan is archived at s3://%s/%s.</p>
</body>
</html>`, ingestion.FileName, ingestion.Stage, ingestion.Reason, ingestion.RawValue,
		ingestion.ID, ingestion.S3Bucket, ingestion.S3Key)
}
