package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDocument = `
en:
  hero:
    name: Ahmad
  socialMedia:
    whatsapp: "96512345678"
  media:
    gallery:
      - id: 1
        src: /images/a.jpg
        title: A
        description: First image
ar:
  hero:
    name: أحمد
  socialMedia:
    whatsapp: "96512345678"
`

func TestLoadDocumentEmbeddedDefault(t *testing.T) {
	doc, err := LoadDocument("")
	require.NoError(t, err)

	require.NotNil(t, doc.En)
	require.NotNil(t, doc.Ar)
	assert.Equal(t, "Ahmad Jaber Ashkanani", doc.En.Hero.Name)
	assert.Equal(t, "أحمد جابر أشكناني", doc.Ar.Hero.Name)
	assert.Len(t, doc.En.Achievements.Featured, 4)
	assert.Equal(t, len(doc.En.Media.Gallery), len(doc.Ar.Media.Gallery))
	assert.Equal(t, "92%", doc.En.Achievements.Certifications[0].Score)
	assert.Empty(t, doc.En.Achievements.Certifications[1].Score)
}

func TestLoadDocumentYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDocument), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Ahmad", doc.En.Hero.Name)
	assert.Equal(t, "أحمد", doc.For(LangArabic).Hero.Name)
	assert.Equal(t, "/images/a.jpg", doc.En.Media.Gallery[0].Src)
	assert.Equal(t, "A", doc.En.Media.Gallery[0].Title)
	assert.Equal(t, "First image", doc.En.Media.Gallery[0].Description)
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseDocumentErrors(t *testing.T) {
	_, err := ParseDocument([]byte(`{}`), ".toml")
	assert.ErrorIs(t, err, ErrUnsupportedContentFormat)

	_, err = ParseDocument([]byte(`{"en": {"socialMedia": {"whatsapp": "1"}}}`), ".json")
	assert.ErrorIs(t, err, ErrMissingLanguage)

	_, err = ParseDocument([]byte(`{
		"en": {"socialMedia": {"whatsapp": "+965 1234"}},
		"ar": {"socialMedia": {"whatsapp": "9651234"}}
	}`), ".json")
	assert.ErrorIs(t, err, ErrInvalidWhatsApp)

	_, err = ParseDocument([]byte(`{not json`), ".json")
	assert.Error(t, err)
}

func TestDocumentForUnknownLanguage(t *testing.T) {
	doc, err := LoadDocument("")
	require.NoError(t, err)
	assert.Nil(t, doc.For("fr"))
}

func TestContentImages(t *testing.T) {
	c := &Content{
		SiteInfo: SiteInfo{HeroImage: "/images/hero.jpg", ContactOfficeImage: "/images/office.jpg"},
		Portfolio: Portfolio{Items: []PortfolioItem{
			{Image: "/images/p1.jpg"},
			{Image: ""},
		}},
		Media: Media{Gallery: []GalleryImage{{Src: "/images/g1.jpg"}}},
	}

	assert.Equal(t, []string{"/images/hero.jpg", "/images/p1.jpg", "/images/g1.jpg", "/images/office.jpg"}, c.Images())
	assert.True(t, c.HasImage("/images/g1.jpg"))
	assert.False(t, c.HasImage("/etc/passwd"))
	assert.False(t, c.HasImage(""))
}
