package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/content.json
var defaultContentFS embed.FS

const defaultContentFile = "data/content.json"

// Document is the bilingual content file, one Content per language key.
type Document struct {
	En *Content `json:"en" yaml:"en"`
	Ar *Content `json:"ar" yaml:"ar"`
}

type Content struct {
	SiteInfo     SiteInfo     `json:"siteInfo" yaml:"siteInfo"`
	Navigation   Navigation   `json:"navigation" yaml:"navigation"`
	Hero         Hero         `json:"hero" yaml:"hero"`
	About        About        `json:"about" yaml:"about"`
	Portfolio    Portfolio    `json:"portfolio" yaml:"portfolio"`
	Achievements Achievements `json:"achievements" yaml:"achievements"`
	Media        Media        `json:"media" yaml:"media"`
	Contact      Contact      `json:"contact" yaml:"contact"`
	SocialMedia  SocialMedia  `json:"socialMedia" yaml:"socialMedia"`
	Partners     []Partner    `json:"partners" yaml:"partners"`
}

type SiteInfo struct {
	Title              string `json:"title" yaml:"title"`
	Description        string `json:"description" yaml:"description"`
	HeroImage          string `json:"heroImage" yaml:"heroImage"`
	AboutImage         string `json:"aboutImage" yaml:"aboutImage"`
	ContactOfficeImage string `json:"contactOfficeImage" yaml:"contactOfficeImage"`
}

type Navigation struct {
	Home         string `json:"home" yaml:"home"`
	About        string `json:"about" yaml:"about"`
	Portfolio    string `json:"portfolio" yaml:"portfolio"`
	Achievements string `json:"achievements" yaml:"achievements"`
	Media        string `json:"media" yaml:"media"`
	Contact      string `json:"contact" yaml:"contact"`
}

type Hero struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	CTA      string `json:"cta" yaml:"cta"`
}

type About struct {
	Title      string   `json:"title" yaml:"title"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
	CTA        string   `json:"cta" yaml:"cta"`
}

type Portfolio struct {
	Title    string          `json:"title" yaml:"title"`
	Subtitle string          `json:"subtitle" yaml:"subtitle"`
	Items    []PortfolioItem `json:"items" yaml:"items"`
}

type PortfolioItem struct {
	Title       string `json:"title" yaml:"title"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type Achievements struct {
	Title               string          `json:"title" yaml:"title"`
	Featured            []Achievement   `json:"featured" yaml:"featured"`
	CertificationsTitle string          `json:"certificationsTitle" yaml:"certificationsTitle"`
	Certifications      []Certification `json:"certifications" yaml:"certifications"`
}

type Achievement struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

type Certification struct {
	Title  string `json:"title" yaml:"title"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Date   string `json:"date" yaml:"date"`
	Score  string `json:"score,omitempty" yaml:"score,omitempty"`
	Image  string `json:"image" yaml:"image"`
}

type Media struct {
	Title              string         `json:"title" yaml:"title"`
	GalleryTitle       string         `json:"galleryTitle" yaml:"galleryTitle"`
	VideosTitle        string         `json:"videosTitle" yaml:"videosTitle"`
	GalleryDescription string         `json:"galleryDescription" yaml:"galleryDescription"`
	VideosDescription  string         `json:"videosDescription" yaml:"videosDescription"`
	Gallery            []GalleryImage `json:"gallery" yaml:"gallery"`
	Videos             []Video        `json:"videos" yaml:"videos"`
}

type GalleryImage struct {
	ID          int    `json:"id" yaml:"id"`
	Src         string `json:"src" yaml:"src"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Video struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
	Date        string `json:"date" yaml:"date"`
}

type Contact struct {
	Title    string      `json:"title" yaml:"title"`
	Subtitle string      `json:"subtitle" yaml:"subtitle"`
	Info     ContactInfo `json:"info" yaml:"info"`
	Social   string      `json:"social" yaml:"social"`
	Form     ContactText `json:"form" yaml:"form"`
	Footer   string      `json:"footer" yaml:"footer"`
}

type ContactInfo struct {
	Title         string `json:"title" yaml:"title"`
	Email         string `json:"email" yaml:"email"`
	EmailValue    string `json:"emailValue" yaml:"emailValue"`
	Phone         string `json:"phone" yaml:"phone"`
	PhoneValue    string `json:"phoneValue" yaml:"phoneValue"`
	Location      string `json:"location" yaml:"location"`
	LocationValue string `json:"locationValue" yaml:"locationValue"`
}

// ContactText holds the labels and placeholders of the contact form.
type ContactText struct {
	FirstName            string `json:"firstName" yaml:"firstName"`
	FirstNamePlaceholder string `json:"firstNamePlaceholder" yaml:"firstNamePlaceholder"`
	LastName             string `json:"lastName" yaml:"lastName"`
	LastNamePlaceholder  string `json:"lastNamePlaceholder" yaml:"lastNamePlaceholder"`
	Email                string `json:"email" yaml:"email"`
	EmailPlaceholder     string `json:"emailPlaceholder" yaml:"emailPlaceholder"`
	Phone                string `json:"phone" yaml:"phone"`
	PhonePlaceholder     string `json:"phonePlaceholder" yaml:"phonePlaceholder"`
	Message              string `json:"message" yaml:"message"`
	MessagePlaceholder   string `json:"messagePlaceholder" yaml:"messagePlaceholder"`
	Submit               string `json:"submit" yaml:"submit"`
}

type SocialMedia struct {
	WhatsApp  string `json:"whatsapp" yaml:"whatsapp"`
	Instagram string `json:"instagram" yaml:"instagram"`
	Twitter   string `json:"twitter" yaml:"twitter"`
}

type Partner struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Logo string `json:"logo" yaml:"logo"`
}

// LoadDocument reads the content file at path, or the embedded default when path is empty.
func LoadDocument(path string) (*Document, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		path = defaultContentFile
		raw, err = defaultContentFS.ReadFile(path)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return ParseDocument(raw, filepath.Ext(path))
}

// ParseDocument decodes raw as JSON or YAML, chosen by file extension.
func ParseDocument(raw []byte, ext string) (*Document, error) {
	doc := &Document{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("decode content json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("decode content yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentFormat, ext)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) validate() error {
	if d.En == nil {
		return fmt.Errorf("%w: %s", ErrMissingLanguage, LangEnglish)
	}
	if d.Ar == nil {
		return fmt.Errorf("%w: %s", ErrMissingLanguage, LangArabic)
	}
	for _, c := range []*Content{d.En, d.Ar} {
		if !isDigits(c.SocialMedia.WhatsApp) {
			return fmt.Errorf("%w: %q", ErrInvalidWhatsApp, c.SocialMedia.WhatsApp)
		}
	}
	return nil
}

// For returns the content for lang. Unknown languages get nil.
func (d *Document) For(lang string) *Content {
	switch lang {
	case LangEnglish:
		return d.En
	case LangArabic:
		return d.Ar
	}
	return nil
}

// HasImage reports whether src is referenced anywhere in c.
func (c *Content) HasImage(src string) bool {
	if src == "" {
		return false
	}
	for _, img := range c.Images() {
		if img == src {
			return true
		}
	}
	return false
}

// Images lists every image path referenced by c, in page order.
func (c *Content) Images() []string {
	images := []string{c.SiteInfo.HeroImage, c.SiteInfo.AboutImage}
	for _, item := range c.Portfolio.Items {
		images = append(images, item.Image)
	}
	for _, a := range c.Achievements.Featured {
		images = append(images, a.Image)
	}
	for _, cert := range c.Achievements.Certifications {
		images = append(images, cert.Image)
	}
	for _, g := range c.Media.Gallery {
		images = append(images, g.Src)
	}
	images = append(images, c.SiteInfo.ContactOfficeImage)
	for _, p := range c.Partners {
		images = append(images, p.Logo)
	}

	out := images[:0]
	for _, img := range images {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
