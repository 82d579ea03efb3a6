package reqschema

import "strings"

// ValidationError 描述单个字段上的校验违规
type ValidationError struct {
	Field  string `json:"field"`  // 违规字段
	Reason string `json:"reason"` // 违规原因（人类可读）
}

// ValidationErrorList contains every violation found in one validation pass. Validation never stops at the first
// violation so that a client can correct the whole request at once.
type ValidationErrorList []ValidationError

// AppendIfEmptyOrBlankSpaces appends a violation for `field` if `str` is empty or contains only blank spaces.
//
// Parameters:
//   the string to be checked
//   the field name
//   the reason to append
//
// Returns:
//   the trimmed string
func (l *ValidationErrorList) AppendIfEmptyOrBlankSpaces(str string, field string, reason string) string {
	if str = strings.TrimSpace(str); str == "" {
		*l = append(*l, ValidationError{Field: field, Reason: reason})
	}

	return str
}

// AppendIfEmptyString appends a violation for `field` if `str` is empty. Unlike `AppendIfEmptyOrBlankSpaces` the
// string is not trimmed, since signature material may legally contain blank characters.
func (l *ValidationErrorList) AppendIfEmptyString(str string, field string, reason string) string {
	if str == "" {
		*l = append(*l, ValidationError{Field: field, Reason: reason})
	}

	return str
}

// AppendIfNotByteSequence appends a violation for `field` unless `seq` is a non-empty sequence of small
// integers (0–255).
//
// Returns:
//   the converted byte sequence (nil if there's a violation)
func (l *ValidationErrorList) AppendIfNotByteSequence(seq []int, field string, reason string) []byte {
	if len(seq) == 0 {
		*l = append(*l, ValidationError{Field: field, Reason: reason})
		return nil
	}

	converted := make([]byte, len(seq))
	for i, b := range seq {
		if b < 0 || b > 255 {
			*l = append(*l, ValidationError{Field: field, Reason: reason})
			return nil
		}
		converted[i] = byte(b)
	}

	return converted
}

// AppendIfNegative appends a violation for `field` if `num` is negative.
//
// Returns:
//   the number as an uint64 (0 if there's a violation)
func (l *ValidationErrorList) AppendIfNegative(num int64, field string, reason string) uint64 {
	if num < 0 {
		*l = append(*l, ValidationError{Field: field, Reason: reason})
		return 0
	}

	return uint64(num)
}
