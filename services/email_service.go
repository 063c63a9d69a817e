package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Seyram02/nations-league/models"
)

type EmailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// EmailService notifies federations by SMTP. When unconfigured it is simply
// disabled; a send failure never affects whether a match is recorded.
type EmailService struct {
	cfg EmailConfig
}

func NewEmailService(cfg EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) Enabled() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}

// SendMatchCompletionEmail mails both federations the final result.
func (s *EmailService) SendMatchCompletionEmail(match *models.Match, result *models.MatchResult) error {
	if !s.Enabled() {
		return nil
	}

	var recipients []string
	if match.Team1 != nil && match.Team1.Email != "" {
		recipients = append(recipients, match.Team1.Email)
	}
	if match.Team2 != nil && match.Team2.Email != "" {
		recipients = append(recipients, match.Team2.Email)
	}
	if len(recipients) == 0 {
		return nil
	}

	roundName := capitalize(string(match.Round))
	scoreline := fmt.Sprintf("%s %d - %d %s", result.Team1, result.Team1Goals, result.Team2Goals, result.Team2)
	subject := fmt.Sprintf("Match Result: %s vs %s - %s", result.Team1, result.Team2, roundName)

	var body strings.Builder
	body.WriteString("Nations League - Match Completion Notification\n\n")
	fmt.Fprintf(&body, "Round: %s\n", roundName)
	fmt.Fprintf(&body, "Match: %s\n", scoreline)
	fmt.Fprintf(&body, "Winner: %s\n", result.Winner)
	if result.DecidedBy == models.DecidedByPenalties && result.PenaltyScore != nil {
		fmt.Fprintf(&body, "\nDecided by penalties: %s\n", *result.PenaltyScore)
	}
	if len(result.GoalScorers) > 0 {
		body.WriteString("\nGoal Scorers:\n")
		for _, scorer := range result.GoalScorers {
			fmt.Fprintf(&body, "  - %s (%s) - %d'\n", scorer.Player, scorer.Team, scorer.Minute)
		}
	}
	body.WriteString("\nThis is an automated notification from the Nations League system.\n")

	return s.sendEmail(recipients, subject, body.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (s *EmailService) sendEmail(to []string, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)

	msg := []byte("To: " + strings.Join(to, ", ") + "\r\n" +
		"From: " + s.cfg.From + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}

	var client *smtp.Client
	if s.cfg.Port == 465 {
		// Implicit TLS.
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return fmt.Errorf("smtp client creation failed: %w", err)
		}
	} else {
		// STARTTLS, usually port 587.
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("smtp message write failed: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp DATA close failed: %w", err)
	}
	return nil
}
