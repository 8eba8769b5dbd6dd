package imageproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProxiedURL(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		assert.Equal(t, "", ProxiedURL(""))
	})

	t.Run("WrapsHTTPS", func(t *testing.T) {
		got := ProxiedURL("https://s4.anilist.co/file/cover.jpg")
		assert.Equal(t, "https://wsrv.nl/?url=https%3A%2F%2Fs4.anilist.co%2Ffile%2Fcover.jpg", got)
	})

	t.Run("UpgradesHTTP", func(t *testing.T) {
		got := ProxiedURL("http://example.com/a.png")
		assert.Equal(t, "https://wsrv.nl/?url=https%3A%2F%2Fexample.com%2Fa.png", got)
	})
}
