package main

import (
	_ "embed"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static/placeholder.svg
var placeholderSVG []byte

const placeholderPath = "/placeholder.svg"

// imageOr returns src, or the placeholder when src is empty.
func imageOr(src string) string {
	if strings.TrimSpace(src) == "" {
		return placeholderPath
	}
	return src
}

func servePlaceholder(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", placeholderSVG)
}

// serveImage handles GET /images/*filepath. Missing files get the placeholder
// rather than a 404 so broken content paths never show a broken image.
func (s *Server) serveImage(c *gin.Context) {
	name := path.Clean("/" + c.Param("filepath"))
	fs := http.Dir(s.cfg.ImagesDir)

	f, err := fs.Open(name)
	if err != nil {
		servePlaceholder(c)
		return
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || info.IsDir() {
		servePlaceholder(c)
		return
	}
	c.FileFromFS(name, fs)
}
