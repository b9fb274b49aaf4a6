package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "s3://www.example.com/index.html", objectURL("www.example.com", "index.html"))
	assert.Equal(t, "s3://bucket/v1/css/main.css", objectURL("bucket", "v1/css/main.css"))
}

func TestContentType(t *testing.T) {
	assert.Contains(t, contentType("_site/index.html"), "text/html")
	assert.Contains(t, contentType("_site/css/main.css"), "text/css")
	assert.Empty(t, contentType("_site/CNAME"))
}
