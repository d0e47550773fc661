package main

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"

	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "language"

	langContextKey = "lang"
)

var (
	supportedTags = []language.Tag{language.English, language.Arabic}
	langMatcher   = language.NewMatcher(supportedTags)
)

// IsSupportedLanguage reports whether code is one of the site languages.
func IsSupportedLanguage(code string) bool {
	return code == LangEnglish || code == LangArabic
}

// LangState is the per-request language context shared by every template section.
type LangState struct {
	Lang      string
	Dir       string
	IsRTL     bool
	Alternate string
	Content   *Content
}

func newLangState(lang string, doc *Document) LangState {
	rtl := lang == LangArabic
	state := LangState{
		Lang:      lang,
		Dir:       "ltr",
		IsRTL:     rtl,
		Alternate: LangArabic,
		Content:   doc.For(lang),
	}
	if rtl {
		state.Dir = "rtl"
		state.Alternate = LangEnglish
	}
	return state
}

// ResolveLanguage picks the language for r: query param, then cookie, then
// Accept-Language, then fallback. The bool reports whether the choice came from
// the query and should be persisted.
func ResolveLanguage(r *http.Request, fallback string) (string, bool) {
	if r == nil {
		return fallback, false
	}

	if v := normalizeLang(r.URL.Query().Get(LangParam)); v != "" {
		return v, true
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if v := normalizeLang(cookie.Value); v != "" {
			return v, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := langMatcher.Match(tags...)
			if conf != language.No {
				return baseCode(supportedTags[idx]), false
			}
		}
	}

	return fallback, false
}

// normalizeLang maps values such as "AR", "ar-KW" or "en_US" onto a site
// language, or "" when unsupported.
func normalizeLang(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return ""
	}
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	code := baseCode(tag)
	if !IsSupportedLanguage(code) {
		return ""
	}
	return code
}

func baseCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// SetLanguageCookie persists lang on the response for a year.
func SetLanguageCookie(c *gin.Context, lang string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LangCookieName, lang, int((365 * 24 * time.Hour).Seconds()), "/", "", false, false)
}

// LanguageURL returns path with the lang query param set to lang.
func LanguageURL(path, rawQuery, lang string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, lang)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func (s *Server) languageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, persist := ResolveLanguage(c.Request, s.cfg.DefaultLang)
		if persist {
			SetLanguageCookie(c, lang)
		}
		c.Set(langContextKey, newLangState(lang, s.doc))
		c.Next()
	}
}

func langFrom(c *gin.Context) LangState {
	if v, ok := c.Get(langContextKey); ok {
		if state, ok := v.(LangState); ok {
			return state
		}
	}
	return LangState{Lang: LangArabic, Dir: "rtl", IsRTL: true, Alternate: LangEnglish}
}

// switchLanguage handles GET /lang/:code: store the choice and go back where the visitor came from.
func (s *Server) switchLanguage(c *gin.Context) {
	lang := normalizeLang(c.Param("code"))
	if lang == "" {
		lang = s.cfg.DefaultLang
	}
	SetLanguageCookie(c, lang)
	c.Redirect(http.StatusSeeOther, safeReturnPath(c.Request.Referer()))
}

// safeReturnPath keeps redirects on this site: only the path, query and fragment of ref survive.
func safeReturnPath(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	q := u.Query()
	q.Del(LangParam)
	out := &url.URL{Path: u.Path, RawQuery: q.Encode(), Fragment: u.Fragment}
	return out.String()
}
