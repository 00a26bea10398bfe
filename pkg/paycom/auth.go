package paycom

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const Login = "Paycom"

// Authorized checks an "Authorization: Basic base64(Paycom:<key>)" header
// against the merchant keys. Empty keys never match.
func Authorized(header string, keys ...string) bool {
	const prefix = "Basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return false
	}

	login, password, ok := strings.Cut(string(decoded), ":")
	if !ok || login != Login {
		return false
	}

	for _, key := range keys {
		if key != "" && subtle.ConstantTimeCompare([]byte(password), []byte(key)) == 1 {
			return true
		}
	}

	return false
}

func BasicAuthHeader(key string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(Login+":"+key))
}
