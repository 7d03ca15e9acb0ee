package entity

import (
	"encoding/json"
	"time"
)

// CommandKind はパレット入力の種別です。
type CommandKind string

const (
	KindQuery CommandKind = "query"
	KindCmd   CommandKind = "cmd"
	KindWatch CommandKind = "watch"
	KindTopic CommandKind = "topic"
)

// ParsedCommand はコマンドパレットの入力を解釈した結果です。
// Kind に応じて Q / Name+Args / List / Topic のいずれかが意味を持ちます。
type ParsedCommand struct {
	Kind  CommandKind
	Q     string
	Name  string
	Args  string
	List  string
	Topic string
}

// MarshalJSON は種別ごとに意味のあるフィールドだけを出力します。
// 空文字列も省略せずに出力する（{"kind":"query","q":""}）。
func (p ParsedCommand) MarshalJSON() ([]byte, error) {
	m := map[string]string{"kind": string(p.Kind)}
	switch p.Kind {
	case KindCmd:
		m["name"] = p.Name
		m["args"] = p.Args
	case KindWatch:
		m["list"] = p.List
	case KindTopic:
		m["topic"] = p.Topic
	default:
		m["q"] = p.Q
	}
	return json.Marshal(m)
}

// Term はフィルタリングに使う検索語を返します。
func (p ParsedCommand) Term() string {
	switch p.Kind {
	case KindCmd:
		return p.Name
	case KindWatch:
		return p.List
	case KindTopic:
		return p.Topic
	default:
		return p.Q
	}
}

// Job はモックのコマンド実行ジョブです。実際の処理は行いません。
type Job struct {
	ID               string
	Input            string
	Parsed           ParsedCommand
	CreatedAt        time.Time
	EstimatedSeconds int
}

// JobStatus はジョブの進捗状態です。
type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
)

// Progress は経過時間から状態と進捗率（0〜1）を求めます。
// 作成直後は queued、見積もり時間を過ぎたら done になります。
func (j Job) Progress(now time.Time) (JobStatus, float64) {
	elapsed := now.Sub(j.CreatedAt)
	if elapsed <= 0 {
		return JobQueued, 0
	}
	total := time.Duration(j.EstimatedSeconds) * time.Second
	if total <= 0 || elapsed >= total {
		return JobDone, 1
	}
	return JobRunning, float64(elapsed) / float64(total)
}
