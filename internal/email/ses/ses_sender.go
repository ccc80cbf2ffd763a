package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"careflow/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReviewAlert(ctx context.Context, to []string, alert port.ReviewAlert) error {
	if len(to) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Careflow: %d record(s) need review from %s", alert.FlaggedRecords, alert.FacilityName)
	htmlBody := buildReviewAlertHTML(alert)
	textBody := fmt.Sprintf(
		"A discharge list from %s (report date %s, file %s) finished ingesting.\n\n"+
			"%d of %d records scored below the review threshold and are waiting in the review queue. "+
			"The lowest confidence score was %.2f.\n\nCareflow Team",
		alert.FacilityName, alert.ReportDate, alert.ReportFileName,
		alert.FlaggedRecords, alert.TotalRecords, alert.LowestConfidence)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: to,
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

func buildReviewAlertHTML(alert port.ReviewAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Discharge records need review</h2>
  <p>A discharge list from <strong>%s</strong> (report date %s) finished ingesting.</p>
  <table style="border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">File</td><td style="padding: 4px 0;">%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Total records</td><td style="padding: 4px 0;">%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Flagged for review</td><td style="padding: 4px 0;">%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Lowest confidence</td><td style="padding: 4px 0;">%.2f</td></tr>
  </table>
  <p>Please work through the review queue at your earliest convenience.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Careflow - Discharge List Processing</p>
</body>
</html>`, alert.FacilityName, alert.ReportDate, alert.ReportFileName,
		alert.TotalRecords, alert.FlaggedRecords, alert.LowestConfidence)
}
