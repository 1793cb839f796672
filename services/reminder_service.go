package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"homework-tracker-api/config"
	"homework-tracker-api/models"
)

var digestTemplate = template.Must(template.New("digest").Parse(`
<h2>Upcoming homework deadlines</h2>
<p>Group: {{.GroupID}}</p>
<ul>
{{range .Deadlines}}  <li><strong>{{.HomeworkID}}</strong> &mdash; {{.Status.Deadline}} ({{.Status.Message}}, {{.Status.Urgency}})</li>
{{end}}</ul>
`))

// ReminderService emails a digest of a group's urgent and critical
// deadlines to the configured recipients.
type ReminderService struct {
	deadlines *DeadlineService
	sendMail  func(to []string, subject, html string) error
}

func NewReminderService(deadlines *DeadlineService) *ReminderService {
	return &ReminderService{
		deadlines: deadlines,
		sendMail:  config.SendMail,
	}
}

// DefaultRecipients reads the comma-separated REMINDER_RECIPIENTS env var.
func (s *ReminderService) DefaultRecipients() []string {
	recipients := make([]string, 0)
	for _, addr := range strings.Split(os.Getenv("REMINDER_RECIPIENTS"), ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// SendUpcomingDigest mails the group's upcoming deadlines and returns how
// many deadlines the digest covered. No upcoming deadlines means no mail.
func (s *ReminderService) SendUpcomingDigest(groupID string, to []string) (int, error) {
	upcoming := s.deadlines.GetUpcomingDeadlines(groupID)
	if len(upcoming) == 0 {
		return 0, nil
	}

	var body bytes.Buffer
	data := struct {
		GroupID   string
		Deadlines []models.UpcomingDeadline
	}{GroupID: groupID, Deadlines: upcoming}
	if err := digestTemplate.Execute(&body, data); err != nil {
		return 0, err
	}

	subject := fmt.Sprintf("%d upcoming homework deadline(s) for group %s", len(upcoming), groupID)
	if err := s.sendMail(to, subject, body.String()); err != nil {
		return 0, err
	}
	return len(upcoming), nil
}
