package di

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	memoadapters "aurora_backend/internal/feature/memo/adapters"
	"aurora_backend/internal/feature/memo/adapters/gemini"
	memousecase "aurora_backend/internal/feature/memo/usecase"
	jwtsig "aurora_backend/internal/platform/jwt"
)

// NewDrafter returns the Gemini drafter when GEMINI_ENABLED is set and the client
// can be created. A nil interface means memos use the template summary.
func NewDrafter(ctx context.Context) memousecase.Drafter {
	if !gemini.Enabled() {
		return nil
	}
	d, err := gemini.NewGeminiDrafter(ctx, "")
	if err != nil {
		slog.Warn("gemini drafter unavailable, using template summaries", "error", err)
		return nil
	}
	return d
}

// NewProvenanceSigner returns the signer configured by PROVENANCE_SIGNING_KEY.
// A nil interface means memos are stamped as unsigned.
func NewProvenanceSigner() memousecase.ProvenanceSigner {
	s := jwtsig.NewSignerFromEnv()
	if s == nil {
		return nil
	}
	return s
}

// NewMemoUsecase wires the memo usecase with its gorm repository.
func NewMemoUsecase(ctx context.Context, db *gorm.DB, source memousecase.InsightSource) *memousecase.MemoUsecase {
	return memousecase.NewMemoUsecase(source, NewDrafter(ctx), NewProvenanceSigner(), memoadapters.NewMemoGorm(db))
}
