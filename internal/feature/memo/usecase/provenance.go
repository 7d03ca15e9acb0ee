package usecase

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"aurora_backend/internal/feature/memo/domain/entity"
)

// Unsigned は署名鍵が無い場合の署名値です。
const Unsigned = "unsigned"

// hashedClaim はハッシュ対象のフィールドです。IDは再生成されうるため含めません。
type hashedClaim struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
	Sources    []entity.Source `json:"sources"`
}

// SnapshotHash はクレーム列の blake2b-256 ハッシュを16進文字列で返します。
// 同じ内容のクレーム列は常に同じハッシュになります。
func SnapshotHash(companyID, summary string, claims []entity.Claim) string {
	payload := struct {
		CompanyID string        `json:"company_id"`
		Summary   string        `json:"summary"`
		Claims    []hashedClaim `json:"claims"`
	}{CompanyID: companyID, Summary: summary, Claims: make([]hashedClaim, 0, len(claims))}
	for _, c := range claims {
		payload.Claims = append(payload.Claims, hashedClaim{Text: c.Text, Confidence: c.Confidence, Sources: c.Sources})
	}
	// 構造体のみを含むためMarshalは失敗しない
	b, _ := json.Marshal(payload)
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
