package usecase

import "errors"

var (
	// ErrUpstreamNotConfigured は上流の検索APIが設定されていない場合のエラーです。
	ErrUpstreamNotConfigured = errors.New("search upstream not configured")
	// ErrJobNotFound は指定されたジョブが存在しない場合のエラーです。
	ErrJobNotFound = errors.New("job not found")
	// ErrEmptyInput はコマンド入力が空の場合のエラーです。
	ErrEmptyInput = errors.New("command input is empty")
)
