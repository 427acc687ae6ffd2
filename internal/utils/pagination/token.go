package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const transactionCursorPrefix = "tx"

// EncodeTransactionCursor creates a base64 encoded token pointing after the given transaction id.
func EncodeTransactionCursor(lastTransactionID int64) string {
	return EncodeMultiFieldToken(transactionCursorPrefix, strconv.FormatInt(lastTransactionID, 10))
}

// DecodeTransactionCursor parses a token produced by EncodeTransactionCursor.
func DecodeTransactionCursor(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != transactionCursorPrefix {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	lastID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	if lastID < 0 {
		return 0, fmt.Errorf("invalid pagination token format (negative id)")
	}
	return lastID, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
