package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/digiwolf/leads/internal/entity"
)

var newLeadTemplate = template.Must(template.New("new_lead").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>New lead: {{.Name}}</h2>
  <table cellpadding="6">
    <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
    {{if .Email}}<tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>{{end}}
    <tr><td><strong>Category</strong></td><td>{{.CategoryLabel}}</td></tr>
    {{if .Description}}<tr><td><strong>Business</strong></td><td>{{.Description}}</td></tr>{{end}}
    {{if .PhoneModel}}<tr><td><strong>Device</strong></td><td>{{.PhoneModel}}</td></tr>{{end}}
    <tr><td><strong>Received</strong></td><td>{{.CreatedAt}}</td></tr>
  </table>
  {{if .Upgraded}}<p>This contact had previously abandoned the form.</p>{{end}}
</body>
</html>`))

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
	s.dial = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

func (s *EmailSender) Configured() bool {
	return s != nil && s.Host != "" && len(s.To) > 0
}

// SendNewLead avisa a equipe que um formulário foi concluído.
func (s *EmailSender) SendNewLead(lead *entity.Lead) error {
	m, err := s.buildNewLeadMessage(lead)
	if err != nil {
		return err
	}
	if err := s.dial(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildNewLeadMessage(lead *entity.Lead) (*gomail.Message, error) {
	data := NewLeadEmailData{
		Name:          lead.Name,
		Phone:         lead.Phone,
		CategoryLabel: lead.Category.Label(),
		CreatedAt:     lead.CreatedAt.Format("2006-01-02 15:04 MST"),
		Upgraded:      lead.UpdatedAt.After(lead.CreatedAt),
	}
	if lead.Email != nil {
		data.Email = *lead.Email
	}
	if lead.BusinessDescription != nil {
		data.Description = *lead.BusinessDescription
	}
	if lead.PhoneModel != nil {
		data.PhoneModel = *lead.PhoneModel
	}

	body, err := renderNewLead(data)
	if err != nil {
		return nil, err
	}

	from := s.From
	if from == "" {
		from = "no-reply@digiwolf.com"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", s.To...)
	if lead.Email != nil && strings.Contains(*lead.Email, "@") {
		m.SetHeader("Reply-To", *lead.Email)
	}
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", lead.Name, data.CategoryLabel))
	m.SetBody("text/html", body)
	return m, nil
}

func renderNewLead(data NewLeadEmailData) (string, error) {
	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
