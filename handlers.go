package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	TabGallery = "gallery"
	TabVideos  = "videos"

	viewportCookie = "viewport"
)

// isHTMXRequest reports whether the request was initiated by HTMX.
func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// MediaView is what the media section template renders: the active tab and
// the visible window of each carousel.
type MediaView struct {
	Tab      string
	View     string
	Gallery  Carousel
	Videos   Carousel
	Images   []GalleryImage
	Clips    []Video
	PrevLink string
	NextLink string
}

// parseTab maps the tab query value ("0" gallery, "1" videos) to a tab name.
// Anything else selects the gallery.
func parseTab(v string) string {
	switch strings.TrimSpace(v) {
	case "1", TabVideos:
		return TabVideos
	}
	return TabGallery
}

// BuildMediaView computes the media section for content with the given tab,
// requested carousel index and viewport hint.
func BuildMediaView(content *Content, tab string, index int, view string) MediaView {
	perPage := ItemsPerPage(view)
	mv := MediaView{
		Tab:     tab,
		View:    view,
		Gallery: NewCarousel(len(content.Media.Gallery), perPage, 0),
		Videos:  NewCarousel(len(content.Media.Videos), perPage, 0),
	}

	active := &mv.Gallery
	if tab == TabVideos {
		active = &mv.Videos
	}
	*active = NewCarousel(active.Total, perPage, index)

	start, end := mv.Gallery.Visible()
	mv.Images = content.Media.Gallery[start:end]
	start, end = mv.Videos.Visible()
	mv.Clips = content.Media.Videos[start:end]

	if active.HasPrev() {
		mv.PrevLink = mediaLink(tab, active.Prev().Index, view)
	}
	if active.HasNext() {
		mv.NextLink = mediaLink(tab, active.Next().Index, view)
	}
	return mv
}

func mediaLink(tab string, index int, view string) string {
	t := "0"
	if tab == TabVideos {
		t = "1"
	}
	link := "/media?tab=" + t + "&index=" + strconv.Itoa(index)
	if view != "" {
		link += "&view=" + view
	}
	return link
}

// viewport reads the carousel width hint from the query, then from the cookie
// set by the page script.
func viewport(c *gin.Context) string {
	if v := c.Query("view"); v != "" {
		return v
	}
	v, _ := c.Cookie(viewportCookie)
	return v
}

func (s *Server) index(c *gin.Context) {
	state := langFrom(c)
	tab := parseTab(c.Query("tab"))
	c.HTML(http.StatusOK, "index.html", gin.H{
		"L":         state,
		"media":     BuildMediaView(state.Content, tab, 0, viewport(c)),
		"form":      ContactForm{},
		"alternate": LanguageURL(c.Request.URL.Path, c.Request.URL.RawQuery, state.Alternate),
	})
}

// mediaSection handles GET /media and returns the media section fragment.
func (s *Server) mediaSection(c *gin.Context) {
	state := langFrom(c)
	index, _ := strconv.Atoi(c.Query("index"))
	mv := BuildMediaView(state.Content, parseTab(c.Query("tab")), index, viewport(c))
	c.HTML(http.StatusOK, "media.html", gin.H{
		"L":     state,
		"media": mv,
	})
}

// LightboxView is a single enlarged image, optionally stepping through the gallery.
type LightboxView struct {
	Src    string
	Alt    string
	HasNav bool
	Index  int
	Total  int
	Prev   int
	Next   int
}

// BuildLightbox resolves a lightbox request. A gallery index takes priority
// and wraps around; otherwise src must be an image the content references.
func BuildLightbox(content *Content, src, galleryIndex string) LightboxView {
	gallery := content.Media.Gallery
	if i, err := strconv.Atoi(galleryIndex); err == nil && len(gallery) > 0 {
		n := len(gallery)
		i = ((i % n) + n) % n
		return LightboxView{
			Src:    imageOr(gallery[i].Src),
			Alt:    gallery[i].Description,
			HasNav: n > 1,
			Index:  i,
			Total:  n,
			Prev:   (i - 1 + n) % n,
			Next:   (i + 1) % n,
		}
	}

	if !content.HasImage(src) {
		return LightboxView{Src: placeholderPath, Alt: content.Hero.Name}
	}
	alt := content.Hero.Name
	for _, g := range gallery {
		if g.Src == src {
			alt = g.Description
			break
		}
	}
	return LightboxView{Src: src, Alt: alt}
}

// LightboxLink is the fragment URL that opens src in the lightbox.
func LightboxLink(src string) string {
	return "/lightbox?src=" + url.QueryEscape(src)
}

func (s *Server) lightbox(c *gin.Context) {
	state := langFrom(c)
	c.HTML(http.StatusOK, "lightbox.html", gin.H{
		"L":   state,
		"box": BuildLightbox(state.Content, c.Query("src"), c.Query("index")),
	})
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.PingContext(c.Request.Context()); err != nil {
		s.log.Errorw("health: db ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
