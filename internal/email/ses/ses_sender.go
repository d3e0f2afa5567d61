package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

// pendingRowLimit caps how many defaulter rows the alert email carries.
const pendingRowLimit = 20

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

func (s *sesSender) SendPendingTdsAlert(ctx context.Context, toEmail string, report *domain.ReconReport) error {
	subject := fmt.Sprintf("TDS pending alert: ₹%.2f outstanding across %d GSTINs",
		report.Summary.TotalTdsPending, report.Summary.TotalGstins)
	htmlBody := buildPendingTdsHTML(report)
	textBody := buildPendingTdsText(report)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
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

func pendingRows(report *domain.ReconReport) []domain.ReconRow {
	rows := make([]domain.ReconRow, 0, pendingRowLimit)
	for i := range report.Details {
		if report.Details[i].TdsDifference <= 0 {
			continue
		}
		rows = append(rows, report.Details[i])
		if len(rows) == pendingRowLimit {
			break
		}
	}
	return rows
}

func buildPendingTdsText(report *domain.ReconReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TDS compliance summary\n\n")
	fmt.Fprintf(&b, "Total GSTINs tracked: %d\n", report.Summary.TotalGstins)
	fmt.Fprintf(&b, "TDS registered: %d\n", report.Summary.TotalTdsRegistered)
	fmt.Fprintf(&b, "Total TDS applicable: %.2f\n", report.Summary.TotalTdsValue)
	fmt.Fprintf(&b, "Total TDS paid: %.2f\n", report.Summary.TotalTdsPaid)
	fmt.Fprintf(&b, "Total TDS pending: %.2f\n\n", report.Summary.TotalTdsPending)

	rows := pendingRows(report)
	if len(rows) == 0 {
		b.WriteString("No pending TDS at this time.\n")
		return b.String()
	}

	b.WriteString("Top pending GSTINs:\n")
	for i := range rows {
		fmt.Fprintf(&b, "  %s  %s  pending %.2f (%s)\n",
			rows[i].GstinNumber, rows[i].LegalName, rows[i].TdsDifference, rows[i].TdsStatus)
	}
	return b.String()
}

func buildPendingTdsHTML(report *domain.ReconReport) string {
	var rowsHTML strings.Builder
	for _, row := range pendingRows(report) {
		fmt.Fprintf(&rowsHTML, `    <tr>
      <td style="padding: 6px 12px; border-bottom: 1px solid #eee;">%s</td>
      <td style="padding: 6px 12px; border-bottom: 1px solid #eee;">%s</td>
      <td style="padding: 6px 12px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td>
      <td style="padding: 6px 12px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
`, row.GstinNumber, row.LegalName, row.TdsDifference, row.TdsStatus)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">TDS compliance summary</h2>
  <p>Tracked GSTINs: <strong>%d</strong> &middot; TDS registered: <strong>%d</strong></p>
  <p>TDS applicable: <strong>%.2f</strong> &middot; Paid: <strong>%.2f</strong> &middot; Pending: <strong style="color: #B91C1C;">%.2f</strong></p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr>
      <th style="padding: 6px 12px; text-align: left; border-bottom: 2px solid #333;">GSTIN</th>
      <th style="padding: 6px 12px; text-align: left; border-bottom: 2px solid #333;">Legal Name</th>
      <th style="padding: 6px 12px; text-align: right; border-bottom: 2px solid #333;">Pending</th>
      <th style="padding: 6px 12px; text-align: left; border-bottom: 2px solid #333;">Status</th>
    </tr>
%s  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">TDSTrack - GSTR2A Compliance Monitor</p>
</body>
</html>`,
		report.Summary.TotalGstins, report.Summary.TotalTdsRegistered,
		report.Summary.TotalTdsValue, report.Summary.TotalTdsPaid,
		report.Summary.TotalTdsPending, rowsHTML.String())
}
