package mail

import "gopkg.in/gomail.v2"

type NewLeadEmailData struct {
	Name          string
	Phone         string
	Email         string
	CategoryLabel string
	Description   string
	PhoneModel    string
	Upgraded      bool
	CreatedAt     string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// To é a caixa da equipe comercial, não o lead.
	To []string

	dial func(m *gomail.Message) error
}
