package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContactValues() url.Values {
	return url.Values{
		"firstName": {"Sara"},
		"lastName":  {"Al-Sabah"},
		"email":     {"sara@example.com"},
		"phone":     {"+965 1111 2222"},
		"message":   {"I would like to discuss representation & contracts."},
	}
}

func TestWhatsAppURL(t *testing.T) {
	form := ContactForm{
		FirstName: "Sara",
		LastName:  "Al-Sabah",
		Email:     "sara@example.com",
		Phone:     "",
		Message:   "Hello?\nSecond line",
	}

	got := WhatsAppURL("96550000000", form)
	require.True(t, strings.HasPrefix(got, "https://wa.me/96550000000?text="))

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t,
		"*New Contact Form Submission*\n\n*Name:* Sara Al-Sabah\n*Email:* sara@example.com\n*Phone:* \n*Message:*\nHello?\nSecond line",
		u.Query().Get("text"),
	)
}

func TestWhatsAppURLEncodesSpacesAsPercent20(t *testing.T) {
	form := ContactForm{FirstName: "Sara", LastName: "B", Email: "s@example.com", Phone: "+965 1111", Message: "hi there"}

	got := WhatsAppURL("965", form)
	assert.Contains(t, got, "%2ANew%20Contact%20Form%20Submission%2A")
	assert.Contains(t, got, "hi%20there")
	assert.NotContains(t, got, "+")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "*Phone:* +965 1111")
}

func TestHeaderValueStripsLineBreaks(t *testing.T) {
	assert.Equal(t, "Sara  Bcc: x@example.com", headerValue("Sara\r\nBcc: x@example.com"))
}

func TestSubmitContactRedirectsToWhatsApp(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm("/contact?lang=en", validContactValues())
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "wa.me", loc.Host)
	assert.Equal(t, "/96550000000", loc.Path)
	assert.Contains(t, loc.Query().Get("text"), "*Name:* Sara Al-Sabah")
	assert.Contains(t, loc.Query().Get("text"), "representation & contracts.")

	subs, err := env.store.ListSubmissions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sara@example.com", subs[0].Email)
	assert.Equal(t, LangEnglish, subs[0].Lang)
	assert.NotEmpty(t, subs[0].ID)
}

func TestSubmitContactHTMX(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/contact?lang=en", strings.NewReader(validContactValues().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("HX-Redirect"), "https://wa.me/96550000000?text="))
	assert.Contains(t, w.Body.String(), "Thank you Sara!")
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		want    string
		wantNot string
	}{
		{
			name:   "missing email",
			mutate: func(v url.Values) { v.Del("email") },
			want:   "Email is required.",
		},
		{
			name:   "bad email",
			mutate: func(v url.Values) { v.Set("email", "not-an-email") },
			want:   "Please enter a valid email address.",
		},
		{
			name:   "blank first name",
			mutate: func(v url.Values) { v.Set("firstName", "   ") },
			want:   "First name is required.",
		},
		{
			name:   "message too long",
			mutate: func(v url.Values) { v.Set("message", strings.Repeat("x", 4001)) },
			want:   "Message is too long.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			values := validContactValues()
			tt.mutate(values)

			w := env.postForm("/contact?lang=en", values)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Contains(t, w.Body.String(), `value="Al-Sabah"`, "valid input is kept")

			subs, err := env.store.ListSubmissions(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, subs)
		})
	}
}

func TestSubmitContactValidationArabic(t *testing.T) {
	env := newTestEnv(t)
	values := validContactValues()
	values.Del("message")

	w := env.postForm("/contact", values)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "الرسالة مطلوب.")
}

func TestSendContactEmailRequiresCredentials(t *testing.T) {
	env := newTestEnv(t)
	err := env.srv.sendContactEmail(newSubmission(ContactForm{FirstName: "A"}, LangEnglish))
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)
}
