package api

import (
	"encoding/base64"
	"strings"
)

const (
	basicPrefix  = "Basic "
	bearerPrefix = "Bearer "
)

func basicAuthorization(email, password string) string {
	return basicPrefix + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

// bearerAuthorization returns the Authorization value for token, or "" when
// the token is blank.
func bearerAuthorization(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	return bearerPrefix + token
}
