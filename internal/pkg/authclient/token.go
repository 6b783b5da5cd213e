package authclient

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeClaims returns the payload of a compact JWT without checking its
// signature. Any malformed input yields (nil, false).
func DecodeClaims(token string) (map[string]any, bool) {
	return decodeClaims(token, zap.NewNop())
}

func decodeClaims(token string, log *zap.Logger) (map[string]any, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		log.Debug("token is not a three part JWT", zap.Int("parts", len(parts)))
		return nil, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		log.Debug("failed to decode token payload", zap.Error(err))
		return nil, false
	}

	claims := jwt.MapClaims{}
	if err = json.Unmarshal(payload, &claims); err != nil || claims == nil {
		log.Debug("failed to parse token claims", zap.Error(err))
		return nil, false
	}

	return claims, true
}

func stringClaim(claims map[string]any, key string) string {
	v, ok := claims[key].(string)
	if !ok {
		return ""
	}

	return v
}
