package web

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

var notFoundPage = []byte(`<!DOCTYPE html>
<html>
<head><title>404 Not Found</title></head>
<body><h1>404 Not Found</h1><p>The booking form is not available.</p></body>
</html>
`)

// FrontDoor serves the booking form document, or a 404 page when it is absent.
func FrontDoor(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", notFoundPage)
			return
		}

		c.File(path)
	}
}
