package usecase

import "aurora_backend/internal/feature/cmdk/domain/entity"

func score(v float64) *float64 { return &v }

// mockResults は上流が使えないときに返す固定の候補一覧です。
var mockResults = []entity.SearchResult{
	{ID: "pinecone", Type: entity.ResultCompany, Title: "Pinecone", Subtitle: "Vector database", Score: score(0.92), Actions: []string{"open", "compare", "memo"}},
	{ID: "weaviate", Type: entity.ResultCompany, Title: "Weaviate", Subtitle: "Open-source vector search", Score: score(0.88), Actions: []string{"open", "compare", "memo"}},
	{ID: "qdrant", Type: entity.ResultCompany, Title: "Qdrant", Subtitle: "Vector similarity engine", Score: score(0.85), Actions: []string{"open", "compare", "memo"}},
	{ID: "openai", Type: entity.ResultCompany, Title: "OpenAI", Subtitle: "Foundation models", Score: score(0.97), Actions: []string{"open", "compare", "memo"}},
	{ID: "anthropic", Type: entity.ResultCompany, Title: "Anthropic", Subtitle: "Foundation models", Score: score(0.95), Actions: []string{"open", "compare", "memo"}},
	{ID: "langchain", Type: entity.ResultCompany, Title: "LangChain", Subtitle: "LLM application framework", Score: score(0.81), Actions: []string{"open", "compare", "memo"}},
	{ID: "topic-vector", Type: entity.ResultTopic, Title: "#vector", Subtitle: "Vector databases and retrieval", Actions: []string{"open", "watch"}},
	{ID: "topic-agents", Type: entity.ResultTopic, Title: "#agents", Subtitle: "Autonomous agent tooling", Actions: []string{"open", "watch"}},
	{ID: "topic-inference", Type: entity.ResultTopic, Title: "#inference", Subtitle: "Serving and inference infrastructure", Actions: []string{"open", "watch"}},
	{ID: "watch-openai", Type: entity.ResultWatchlist, Title: "@openai", Subtitle: "OpenAI ecosystem watchlist", Actions: []string{"open"}},
	{ID: "watch-infra", Type: entity.ResultWatchlist, Title: "@infra", Subtitle: "AI infrastructure watchlist", Actions: []string{"open"}},
	{ID: "cmd-generate", Type: entity.ResultCommand, Title: ">generate memo", Subtitle: "Draft an investment memo", Actions: []string{"run"}},
	{ID: "cmd-compare", Type: entity.ResultCommand, Title: ">compare", Subtitle: "Open the weighted comparator", Actions: []string{"run"}},
	{ID: "cmd-snapshot", Type: entity.ResultCommand, Title: ">snapshot", Subtitle: "Snapshot the current comparison", Actions: []string{"run"}},
}

// knownCommands は ">" 入力時に補完候補として出すコマンド名です。
var knownCommands = []string{"generate", "compare", "snapshot", "open", "watch"}
