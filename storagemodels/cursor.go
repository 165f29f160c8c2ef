/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// cursorAttr is the token form of a key attribute. Only scalar key types can
// appear in a DynamoDB key, so sets, lists and maps are rejected.
type cursorAttr struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// EncodeCursor converts a cursor into an opaque URL-safe token.
// An empty cursor encodes to the empty string.
func EncodeCursor(c Cursor) (string, error) {
	if c.Empty() {
		return "", nil
	}

	attrs := make(map[string]cursorAttr, len(c))
	for name, av := range c {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			s := v.Value
			attrs[name] = cursorAttr{S: &s}
		case *types.AttributeValueMemberN:
			n := v.Value
			attrs[name] = cursorAttr{N: &n}
		case *types.AttributeValueMemberB:
			attrs[name] = cursorAttr{B: v.Value}
		default:
			return "", fmt.Errorf("cursor attribute %q has unsupported type %T", name, av)
		}
	}

	raw, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeCursor parses a token produced by EncodeCursor.
// The empty token decodes to a nil cursor.
func DecodeCursor(token string) (Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor token: %w", err)
	}

	var attrs map[string]cursorAttr
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode cursor token: %w", err)
	}

	c := make(Cursor, len(attrs))
	for name, a := range attrs {
		switch {
		case a.S != nil:
			c[name] = &types.AttributeValueMemberS{Value: *a.S}
		case a.N != nil:
			c[name] = &types.AttributeValueMemberN{Value: *a.N}
		case a.B != nil:
			c[name] = &types.AttributeValueMemberB{Value: a.B}
		default:
			return nil, fmt.Errorf("cursor attribute %q has no value", name)
		}
	}
	return c, nil
}
