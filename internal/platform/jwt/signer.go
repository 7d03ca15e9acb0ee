// Package jwtsig はHS256のJWSで来歴（provenance）に署名します。
package jwtsig

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeySigningKey は署名鍵の環境変数名です。
	EnvKeySigningKey = "PROVENANCE_SIGNING_KEY"
	// EnvKeySigner は署名者名の環境変数名です。
	EnvKeySigner = "PROVENANCE_SIGNER"
	// DefaultSigner は署名者名が未設定のときの値です。
	DefaultSigner = "aurora-lite"
)

// ErrInvalidSignature は署名の検証に失敗した場合のエラーです。
var ErrInvalidSignature = errors.New("invalid provenance signature")

// Signer は来歴クレームに署名します。
type Signer struct {
	secret []byte
	name   string
	now    func() time.Time
}

// NewSigner は鍵と署名者名からSignerを生成します。鍵が空ならnilを返します。
func NewSigner(secret, name string) *Signer {
	if secret == "" {
		return nil
	}
	if name == "" {
		name = DefaultSigner
	}
	return &Signer{secret: []byte(secret), name: name, now: time.Now}
}

// NewSignerFromEnv は環境変数からSignerを生成します。鍵が未設定ならnilです。
func NewSignerFromEnv() *Signer {
	return NewSigner(os.Getenv(EnvKeySigningKey), os.Getenv(EnvKeySigner))
}

// Name は署名者名を返します。
func (s *Signer) Name() string {
	return s.name
}

// Sign は subject（メモID）とスナップショットハッシュを含むJWSを返します。
func (s *Signer) Sign(subject, snapshotHash string) (string, error) {
	claims := jwt.MapClaims{
		"iss":           s.name,
		"sub":           subject,
		"iat":           s.now().Unix(),
		"snapshot_hash": snapshotHash,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign provenance: %w", err)
	}
	return signed, nil
}

// Verify は署名を検証し、subject と snapshot_hash が一致するか確認します。
func (s *Signer) Verify(tokenStr, subject, snapshotHash string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// HMAC以外のアルゴリズムは受け付けない
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.name), jwt.WithSubject(subject))
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["snapshot_hash"] != snapshotHash {
		return fmt.Errorf("%w: snapshot hash mismatch", ErrInvalidSignature)
	}
	return nil
}
