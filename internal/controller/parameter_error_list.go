package controller

import (
	"encoding/base64"
	"strings"
	"time"
)

// ParameterErrorList contains a list of human-readable errors about parameters.
type ParameterErrorList []string

// AppendIfEmptyOrBlankSpaces appends the error message specified if `str` is empty or contains only blank spaces.
//
// Parameters:
//   the string to be checked
//   the error message to append
//
// Returns:
//   the trimmed string
func (pel *ParameterErrorList) AppendIfEmptyOrBlankSpaces(str string, errMsg string) string {
	if str = strings.TrimSpace(str); str == "" {
		*pel = append(*pel, errMsg)
	}

	return str
}

// AppendIfNotBase64 appends the error message specified if `str` cannot be decoded as standard Base64.
//
// Parameters:
//   the string to be checked
//   the error message to append
//
// Returns:
//   the decoded bytes or nil if there's error
func (pel *ParameterErrorList) AppendIfNotBase64(str string, errMsg string) []byte {
	decoded, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		*pel = append(*pel, errMsg)
		return nil
	}

	return decoded
}

// AppendIfNotRFC3339Time appends the error message specified if `str` is not an RFC 3339 timestamp.
//
// Parameters:
//   the string to be checked
//   the error message to append
//
// Returns:
//   the parsed time or the zero time if there's error
func (pel *ParameterErrorList) AppendIfNotRFC3339Time(str string, errMsg string) time.Time {
	parsed, err := time.Parse(time.RFC3339, str)
	if err != nil {
		*pel = append(*pel, errMsg)
		return time.Time{}
	}

	return parsed
}
