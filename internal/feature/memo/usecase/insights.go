package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"aurora_backend/internal/feature/memo/domain/entity"
)

// MaxClaims はメモに含めるクレーム数の上限です。
const MaxClaims = 8

// decodeInsights は {"insights":[...]} と [...] の両方の形式を受け付けます。
func decodeInsights(raw json.RawMessage) ([]entity.Insight, error) {
	var list []entity.Insight
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Insights []entity.Insight `json:"insights"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return wrapped.Insights, nil
}

func displayName(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	for i, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	if len(parts) == 0 {
		return id
	}
	return strings.Join(parts, " ")
}

// fallbackClaims は上流から洞察を得られなかった場合の定型クレームです。
func fallbackClaims(companyID, topic string) []entity.Claim {
	name := displayName(companyID)
	focus := "its core market"
	if topic != "" {
		focus = topic
	}
	src := []entity.Source{{Title: "AURORA-Lite placeholder"}}
	return []entity.Claim{
		{Text: fmt.Sprintf("%s shows sustained developer interest in %s.", name, focus), Confidence: 0.6, Sources: src},
		{Text: fmt.Sprintf("%s's hiring velocity suggests continued product investment.", name), Confidence: 0.5, Sources: src},
		{Text: fmt.Sprintf("Competitive pressure around %s remains the key risk for %s.", focus, name), Confidence: 0.4, Sources: src},
	}
}

// claimsFromInsights は洞察をクレームに変換します。本文が空のものは捨てます。
func claimsFromInsights(insights []entity.Insight, retrievedAt string) []entity.Claim {
	out := make([]entity.Claim, 0, min(len(insights), MaxClaims))
	for _, in := range insights {
		if len(out) == MaxClaims {
			break
		}
		body := strings.TrimSpace(in.Body())
		if body == "" {
			continue
		}
		conf := 0.5
		if in.Confidence != nil {
			conf = min(max(*in.Confidence, 0), 1)
		}
		sources := make([]entity.Source, 0, len(in.Sources))
		for _, s := range in.Sources {
			if s.RetrievedAt == "" {
				s.RetrievedAt = retrievedAt
			}
			sources = append(sources, s)
		}
		out = append(out, entity.Claim{Text: body, Confidence: conf, Sources: sources})
	}
	return out
}

// templateSummary はクレームを連結した要約を返します。
func templateSummary(companyID string, claims []entity.Claim) string {
	var b strings.Builder
	b.WriteString(displayName(companyID))
	b.WriteString(":")
	for _, c := range claims {
		b.WriteString(" ")
		b.WriteString(c.Text)
	}
	return b.String()
}

// draftPrompt は要約生成用のプロンプトを組み立てます。
func draftPrompt(companyID, topic string, claims []entity.Claim) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a concise three-sentence investment brief about %s", displayName(companyID))
	if topic != "" {
		fmt.Fprintf(&b, " focused on %s", topic)
	}
	b.WriteString(". Use only the following claims and do not invent facts.\n")
	for i, c := range claims {
		fmt.Fprintf(&b, "%d. %s (confidence %.2f)\n", i+1, c.Text, c.Confidence)
	}
	return b.String()
}
