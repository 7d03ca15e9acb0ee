package usecase

import (
	"strings"

	"aurora_backend/internal/feature/cmdk/domain/entity"
)

// ParseCommand はパレット入力を解釈します。
//
//	">name args..." → cmd   （args は残りのトークンを半角スペース1つで連結）
//	"@list"         → watch
//	"#topic"        → topic
//	それ以外         → query
func ParseCommand(input string) entity.ParsedCommand {
	s := strings.TrimSpace(input)
	if s == "" {
		return entity.ParsedCommand{Kind: entity.KindQuery}
	}

	switch s[0] {
	case '>':
		fields := strings.Fields(s[1:])
		if len(fields) == 0 {
			return entity.ParsedCommand{Kind: entity.KindCmd}
		}
		return entity.ParsedCommand{
			Kind: entity.KindCmd,
			Name: fields[0],
			Args: strings.Join(fields[1:], " "),
		}
	case '@':
		return entity.ParsedCommand{Kind: entity.KindWatch, List: strings.TrimSpace(s[1:])}
	case '#':
		return entity.ParsedCommand{Kind: entity.KindTopic, Topic: strings.TrimSpace(s[1:])}
	}
	return entity.ParsedCommand{Kind: entity.KindQuery, Q: s}
}
