package view

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// EmailHash computes the gravatar hash for an email address: the MD5 of the
// trimmed, lowercased address.
func EmailHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// Gravatar renders the avatar img element for a gravatar hash.
func Gravatar(hash string, size int) cmp.Node {
	return g.Img(
		g.Class("gravatar"),
		g.Src(fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d", hash, size)),
		g.Width(strconv.Itoa(size)),
		g.Height(strconv.Itoa(size)),
		g.Alt(""),
	)
}
