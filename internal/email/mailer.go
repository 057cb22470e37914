// AngelaMos | 2026
// mailer.go

package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"github.com/carterperez-dev/bookhive/internal/auth"
	"github.com/carterperez-dev/bookhive/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer sends transactional mail over SMTP. A client is built per send
// so a dropped connection never poisons later deliveries.
type Mailer struct {
	cfg       config.MailConfig
	templates *template.Template
}

func NewMailer(cfg config.MailConfig) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	return &Mailer{
		cfg:       cfg,
		templates: templates,
	}, nil
}

type activationData struct {
	Name          string
	Code          string
	ActivationURL string
}

// SendActivation mails the six digit activation code together with a
// link to the confirmation page.
func (m *Mailer) SendActivation(
	ctx context.Context,
	to, name, code string,
) error {
	var body bytes.Buffer
	err := m.templates.ExecuteTemplate(&body, "activate_account.html",
		activationData{
			Name:          name,
			Code:          code,
			ActivationURL: m.cfg.ActivationURL,
		})
	if err != nil {
		return fmt.Errorf("render activation template: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	msg.Subject("Account activation")
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	client, err := m.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send activation mail: %w", err)
	}

	return nil
}

func (m *Mailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(m.cfg.SendTimeout),
	}

	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return client, nil
}

var _ auth.Mailer = (*Mailer)(nil)
