package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/duvindu/saffron/internal/domain"
)

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`Hello {{.CustomerName}},

Thank you for your order from {{.StoreName}}!

Order {{.OrderNumber}}
{{range .Items}}  {{.Quantity}} x {{.Name}} — {{.LineTotal}}
{{end}}
Subtotal: {{.Subtotal}}
Shipping: {{.Shipping}}
Total:    {{.Total}}

We'll let you know when it ships. You can track your order any time at
{{.TrackingURL}} using your order number and email address.

{{.StoreName}}
`))

var contactAckTmpl = template.Must(template.New("contact_ack").Parse(`Hello {{.Name}},

We received your message "{{.Subject}}" and will get back to you within two
business days.

{{.StoreName}}
`))

// Service composes and sends the storefront's transactional emails through a
// Sender.
type Service struct {
	sender    Sender
	from      string
	storeName string
	baseURL   string
	logger    *slog.Logger
}

// NewService creates an email service.
func NewService(sender Sender, from, storeName, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		sender:    sender,
		from:      from,
		storeName: storeName,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// OrderConfirmationData carries the values rendered into the confirmation
// email. Monetary fields arrive pre-formatted; formatting currency is the
// currency layer's job, not this package's.
type OrderConfirmationData struct {
	CustomerName string
	OrderNumber  string
	Items        []OrderConfirmationItem
	Subtotal     string
	Shipping     string
	Total        string
}

// OrderConfirmationItem is one line of the confirmation email.
type OrderConfirmationItem struct {
	Name      string
	Quantity  int32
	LineTotal string
}

// SendOrderConfirmation sends the order confirmation email.
func (s *Service) SendOrderConfirmation(ctx context.Context, to string, data OrderConfirmationData) error {
	body, err := render(orderConfirmationTmpl, struct {
		OrderConfirmationData
		StoreName   string
		TrackingURL string
	}{data, s.storeName, s.baseURL + "/orders/track"})
	if err != nil {
		return domain.Internal(err, "email.order_confirmation", "failed to render email")
	}

	msgID, err := s.sender.Send(ctx, &Email{
		To:       []string{to},
		From:     s.from,
		Subject:  fmt.Sprintf("Your %s order %s", s.storeName, data.OrderNumber),
		TextBody: body,
	})
	if err != nil {
		return domain.Internal(err, "email.order_confirmation", "failed to send email")
	}

	s.logger.Info("order confirmation sent", "order_number", data.OrderNumber, "message_id", msgID)
	return nil
}

// SendContactAck acknowledges a contact-form submission.
func (s *Service) SendContactAck(ctx context.Context, to, name, subject string) error {
	body, err := render(contactAckTmpl, struct {
		Name      string
		Subject   string
		StoreName string
	}{name, subject, s.storeName})
	if err != nil {
		return domain.Internal(err, "email.contact_ack", "failed to render email")
	}

	if _, err := s.sender.Send(ctx, &Email{
		To:       []string{to},
		From:     s.from,
		Subject:  fmt.Sprintf("We received your message — %s", s.storeName),
		TextBody: body,
	}); err != nil {
		return domain.Internal(err, "email.contact_ack", "failed to send email")
	}
	return nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
