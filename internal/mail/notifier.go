package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/joseph-ayodele/sow-auditor/internal/common"
	"github.com/joseph-ayodele/sow-auditor/internal/report"
)

// Notifier sends the finished audit report by email over SMTP with STARTTLS.
type Notifier struct {
	cfg    common.SMTPConfig
	logger *slog.Logger
}

func NewNotifier(cfg common.SMTPConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{cfg: cfg, logger: logger}
}

// SendReport emails the PDF at reportPath to the recipient, with a plain-text
// body summarizing the run. Delivery failure never invalidates the report on
// disk; callers treat the returned error as advisory.
func (n *Notifier) SendReport(ctx context.Context, rep *report.AuditReport, reportPath, recipient string) error {
	if recipient == "" {
		recipient = n.cfg.Recipient
	}
	if n.cfg.Username == "" || n.cfg.Password == "" {
		return common.ConfigError("SMTP_EMAIL and SMTP_PASSWORD are required for email delivery")
	}
	if recipient == "" {
		return common.ConfigError("RECIPIENT_EMAIL is required for email delivery")
	}

	msg, err := BuildMessage(rep, reportPath, n.cfg.Username, recipient)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return common.DeliveryError("smtp client setup", err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		n.logger.Error("mail.send.failed",
			"host", n.cfg.Host,
			"recipient", recipient,
			"error", err.Error(),
		)
		return common.DeliveryError("send report email", err)
	}
	n.logger.Info("mail.send.ok",
		"host", n.cfg.Host,
		"recipient", recipient,
		"attachment", reportPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// BuildMessage assembles the outbound message: subject, plain-text summary
// body, and the PDF attachment.
func BuildMessage(rep *report.AuditReport, reportPath, from, to string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, common.InputError("invalid sender address "+from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, common.InputError("invalid recipient address "+to, err)
	}
	msg.Subject(fmt.Sprintf("SOW Audit: %s - %.1f/100 (%s)",
		rep.ProjectName, rep.Score.Score, rep.Score.RiskRating))
	msg.SetBodyString(gomail.TypeTextPlain, BodyText(rep))
	if reportPath != "" {
		msg.AttachFile(reportPath)
	}
	return msg, nil
}

// BodyText renders the plain-text email body.
func BodyText(rep *report.AuditReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SOW audit for %s is complete.\n\n", rep.ProjectName)
	fmt.Fprintf(&b, "Score:        %.1f / 100 (%s)\n", rep.Score.Score, rep.Score.RiskRating)
	fmt.Fprintf(&b, "Decision:     %s\n", rep.GoNoGo)
	fmt.Fprintf(&b, "Criteria met: %d of %d (%d partial, %d not met)\n",
		rep.Score.Met, rep.Score.Total, rep.Score.Partial, rep.Score.NotMet)
	fmt.Fprintf(&b, "Source:       %s\n\n", rep.Document.Filename)

	b.WriteString("Pillar results:\n")
	for _, f := range rep.Findings {
		fmt.Fprintf(&b, "  [%s] %s (%s risk)\n", f.Status, f.Name, f.RiskLevel)
	}
	if len(rep.Escalations) > 0 {
		b.WriteString("\nEscalations:\n")
		for _, e := range rep.Escalations {
			fmt.Fprintf(&b, "  - %s: %s\n", e.Pillar, e.Recommendation)
		}
	}
	b.WriteString("\nThe full report is attached.\n")
	return b.String()
}
