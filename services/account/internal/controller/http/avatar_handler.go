package http

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"net/http"

	"snapgram/services/account/internal/usecase"

	"github.com/gin-gonic/gin"
)

var avatarColors = []string{"#877EFF", "#5D5FEF", "#FF5A5A", "#24B47E", "#FFB620", "#0095F6"}

// Initials godoc
// @Summary      Initials avatar
// @Description  Renders an SVG avatar with the initials of name
// @Tags         account
// @Produce      image/svg+xml
// @Param        name query string true "Display name"
// @Success      200  {string}  string
// @Router       /avatars/initials [get]
func Initials(c *gin.Context) {
	name := c.Query("name")
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", initialsSVG(name))
}

func initialsSVG(name string) []byte {
	h := fnv.New32a()
	h.Write([]byte(name))
	color := avatarColors[h.Sum32()%uint32(len(avatarColors))]

	var text bytes.Buffer
	_ = xml.EscapeText(&text, []byte(usecase.Initials(name)))

	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">`+
			`<rect width="128" height="128" rx="64" fill="%s"/>`+
			`<text x="50%%" y="50%%" dy=".35em" text-anchor="middle" font-family="Inter, sans-serif" font-size="52" fill="#FFFFFF">%s</text>`+
			`</svg>`,
		color, text.String()))
}
