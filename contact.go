package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ContactForm is the contact section's form as posted by the browser.
type ContactForm struct {
	FirstName string `form:"firstName" binding:"required,max=100"`
	LastName  string `form:"lastName" binding:"required,max=100"`
	Email     string `form:"email" binding:"required,email,max=254"`
	Phone     string `form:"phone" binding:"max=40"`
	Message   string `form:"message" binding:"required,max=4000"`
}

func (f *ContactForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
}

// Submission is a stored contact form entry.
type Submission struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Lang      string    `json:"lang"`
	CreatedAt time.Time `json:"created_at"`
}

func newSubmission(f ContactForm, lang string) *Submission {
	return &Submission{
		ID:        uuid.NewString(),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Message:   f.Message,
		Lang:      lang,
		CreatedAt: time.Now().UTC(),
	}
}

// WhatsAppMessage is the text prefilled in the chat opened for a submission.
func WhatsAppMessage(f ContactForm) string {
	return fmt.Sprintf("*New Contact Form Submission*\n\n*Name:* %s %s\n*Email:* %s\n*Phone:* %s\n*Message:*\n%s",
		f.FirstName, f.LastName, f.Email, f.Phone, f.Message)
}

// WhatsAppURL builds the wa.me link for number with the submission as text.
// Spaces are sent as %20; some clients show a literal + otherwise.
func WhatsAppURL(number string, f ContactForm) string {
	text := strings.ReplaceAll(url.QueryEscape(WhatsAppMessage(f)), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}

// fieldErrors turns validator errors into localized messages keyed by form field.
func (s *Server) fieldErrors(err error, lang string, labels ContactText) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = s.tr.T(lang, "contact_error", nil)
		return out
	}

	label := map[string]string{
		"FirstName": labels.FirstName,
		"LastName":  labels.LastName,
		"Email":     labels.Email,
		"Phone":     labels.Phone,
		"Message":   labels.Message,
	}
	field := map[string]string{
		"FirstName": "firstName",
		"LastName":  "lastName",
		"Email":     "email",
		"Phone":     "phone",
		"Message":   "message",
	}
	for _, fe := range verrs {
		name := field[fe.Field()]
		if _, seen := out[name]; seen {
			continue
		}
		switch fe.Tag() {
		case "required":
			out[name] = s.tr.T(lang, "field_required", map[string]any{"Field": label[fe.Field()]})
		case "email":
			out[name] = s.tr.T(lang, "field_email", nil)
		default:
			out[name] = s.tr.T(lang, "field_too_long", map[string]any{"Field": label[fe.Field()]})
		}
	}
	return out
}

// submitContact handles POST /contact. Valid submissions are stored and the
// visitor is sent on to WhatsApp; invalid ones get the form back with errors.
func (s *Server) submitContact(c *gin.Context) {
	state := langFrom(c)

	var form ContactForm
	err := c.ShouldBind(&form)
	form.trim()
	if err == nil {
		// Whitespace-only input passes binding but is empty once trimmed.
		err = binding.Validator.ValidateStruct(&form)
	}
	if err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-form.html", gin.H{
			"L":      state,
			"form":   form,
			"errors": s.fieldErrors(err, state.Lang, state.Content.Contact.Form),
		})
		return
	}

	sub := newSubmission(form, state.Lang)
	if err := s.store.SaveSubmission(c.Request.Context(), sub); err != nil {
		s.log.Errorw("contact: storing submission failed", "id", sub.ID, "error", err)
	}
	if s.cfg.SMTPConfigured() {
		go func() {
			if err := s.sendContactEmail(sub); err != nil {
				s.log.Errorw("contact: email notification failed", "id", sub.ID, "error", err)
			}
		}()
	}
	s.log.Infow("contact: submission received", "id", sub.ID, "lang", sub.Lang)

	target := WhatsAppURL(state.Content.SocialMedia.WhatsApp, form)
	if isHTMXRequest(c.Request) {
		c.Header("HX-Redirect", target)
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"L":       state,
			"success": s.tr.T(state.Lang, "contact_success", map[string]any{"Name": form.FirstName}),
			"target":  target,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) sendContactEmail(sub *Submission) error {
	if !s.cfg.SMTPConfigured() {
		return ErrSMTPNotConfigured
	}

	subject := headerValue(fmt.Sprintf("Portfolio Contact: %s %s", sub.FirstName, sub.LastName))
	body := fmt.Sprintf(`
New contact form submission from the portfolio:

Name: %s %s
Email: %s
Phone: %s
Language: %s
Message:
%s

---
Sent from the portfolio contact form
`, sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.Lang, sub.Message)

	msg := []byte("To: " + s.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.SMTPUser + "\r\n" +
		"Reply-To: " + headerValue(sub.Email) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err := smtp.SendMail(s.cfg.SMTPHost+":"+s.cfg.SMTPPort, auth, s.cfg.SMTPUser, []string{s.cfg.ToEmail}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// headerValue keeps user input from starting a new mail header line.
func headerValue(v string) string {
	return headerReplacer.Replace(v)
}
