package utils

import (
	"fmt"
	"net/url"
)

// AudioURL builds the pronunciation URL for a word from the configured base,
// e.g. https://dict.youdao.com/dictvoice?audio=hello&type=2. An empty base
// disables audio links.
func AudioURL(baseURL, word string) string {
	if baseURL == "" || word == "" {
		return ""
	}
	return fmt.Sprintf("%s?audio=%s&type=2", baseURL, url.QueryEscape(word))
}
