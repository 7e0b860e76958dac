// internal/service/cms.go
//
// Public, unauthenticated operations used by the storefront.
//
// Context
// -------
// GetCMSContent resolves one published item by collection and identifier.
// SentContactForm renders the "contact-us-email" template and relays it to
// the site owner.  A relay failure is logged, counted, and returned as
// domain.ErrExternal together with a status:false response; the visitor
// never sees the relay's error text.
package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/adept-content/internal/content"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/logger"
	"github.com/yanizio/adept-content/internal/message"
	"github.com/yanizio/adept-content/internal/metrics"
	"github.com/yanizio/adept-content/internal/requestinfo"
)

const contactTemplate = "contact-us-email"

// ContentFinder is the slice of the content repository the public side
// needs.
type ContentFinder interface {
	FindByIdentifier(ctx context.Context, db sqlx.QueryerContext, contentType, identifier string) (content.Content, error)
}

// Renderer renders a named mail template.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// ContactConfig addresses the contact-form mail.
type ContactConfig struct {
	From    string
	To      string
	Subject string
}

// CMSService serves the public operations.
type CMSService struct {
	db       sqlx.QueryerContext
	contents ContentFinder
	render   Renderer
	mail     message.Sender
	contact  ContactConfig
	validate *validator.Validate
}

// NewCMSService wires the public service.  An empty Subject defaults to
// "Contact us message".
func NewCMSService(db sqlx.QueryerContext, contents ContentFinder, render Renderer, mail message.Sender, contact ContactConfig) *CMSService {
	if contact.Subject == "" {
		contact.Subject = "Contact us message"
	}
	return &CMSService{
		db:       db,
		contents: contents,
		render:   render,
		mail:     mail,
		contact:  contact,
		validate: validator.New(),
	}
}

// GetCMSContent returns one item by collection identifier and item
// identifier.
func (s *CMSService) GetCMSContent(ctx context.Context, req GetCMSContentRequest) (ContentResponse, error) {
	c, err := s.contents.FindByIdentifier(ctx, s.db, req.ContentType, req.ContentIdentifier)
	if err != nil {
		return ContentResponse{}, err
	}
	return ContentResponse{Status: true, Data: toContentModel(c)}, nil
}

// contactOrigin is optional request metadata shown in the mail footer.
type contactOrigin struct {
	Browser string
	OS      string
	Country string
}

type contactEmail struct {
	SentContactFormRequest
	Origin *contactOrigin
}

// SentContactForm relays a visitor message by e-mail.
func (s *CMSService) SentContactForm(ctx context.Context, req SentContactFormRequest) (SentContactFormResponse, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return SentContactFormResponse{}, domain.Invalid("contact form: %v", err)
	}

	payload := contactEmail{SentContactFormRequest: req}
	if info := requestinfo.FromContext(ctx); info != nil {
		payload.Origin = &contactOrigin{
			Browser: info.UA.Browser,
			OS:      info.UA.OS,
			Country: info.Geo.CountryISO,
		}
	}

	body, err := s.render.Render(contactTemplate, payload)
	if err != nil {
		return SentContactFormResponse{}, fmt.Errorf("contact form: %w", err)
	}

	err = s.mail.Send(ctx, message.Email{
		From:    s.contact.From,
		To:      []string{s.contact.To},
		Subject: s.contact.Subject,
		Body:    body,
		HTML:    true,
	})
	if err != nil {
		metrics.ContactEmailTotal.WithLabelValues("failed").Inc()
		logger.FromContext(ctx).Errorw("there is an issue with sending an email via smtp", "err", err)
		return SentContactFormResponse{Status: false}, fmt.Errorf("error while sending an email: %w", domain.ErrExternal)
	}

	metrics.ContactEmailTotal.WithLabelValues("sent").Inc()
	return SentContactFormResponse{Status: true}, nil
}
