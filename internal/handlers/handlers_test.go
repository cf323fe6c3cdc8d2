package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "5-tips-for-your-first-brrrr", slugify("5 Tips for Your First BRRRR!"))
	assert.Equal(t, "hello-world", slugify("  Hello,   World  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestImageCodecRoundTrip(t *testing.T) {
	urls := []string{"/uploads/forum/a.jpg", "/uploads/forum/b.jpg"}
	assert.Equal(t, urls, decodeImages(encodeImages(urls)))
}

func TestVerificationCodeFormat(t *testing.T) {
	for i := 0; i < 10; i++ {
		code, err := verificationCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', code)
		}
	}
}

func TestImageCodecEmpty(t *testing.T) {
	assert.Equal(t, "[]", encodeImages(nil))
	assert.Equal(t, []string{}, decodeImages(""))
	assert.Equal(t, []string{}, decodeImages("not json"))
	assert.Equal(t, []string{}, decodeImages("null"))
}
